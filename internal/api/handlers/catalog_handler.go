package handlers

import (
	"net/http"

	"github.com/openreceptor/receptordb/internal/api/types"
	"github.com/openreceptor/receptordb/internal/repository"
)

// CatalogHandler serves the content catalogs: publications, news, pages
// and documentation.
type CatalogHandler struct {
	publications repository.PublicationRepository
	content      repository.ContentRepository
}

func NewCatalogHandler(publications repository.PublicationRepository, content repository.ContentRepository) *CatalogHandler {
	return &CatalogHandler{publications: publications, content: content}
}

func (h *CatalogHandler) Publications(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	items, total, err := h.publications.List(r.Context(), (page-1)*size, size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    items,
		Meta:    &types.Meta{Page: page, PageSize: size, Total: total},
	})
}

func (h *CatalogHandler) News(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ListNews(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items})
}

func (h *CatalogHandler) Pages(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ListPages(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items})
}

func (h *CatalogHandler) Documentation(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ListDocumentation(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items})
}
