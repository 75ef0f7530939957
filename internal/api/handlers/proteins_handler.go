package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openreceptor/receptordb/internal/api/types"
	"github.com/openreceptor/receptordb/internal/build"
	"github.com/openreceptor/receptordb/internal/models"
	"github.com/openreceptor/receptordb/internal/repository"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

// ProteinsHandler serves reference proteins and constructs.
type ProteinsHandler struct {
	proteins     repository.ProteinRepository
	residues     repository.ResidueRepository
	defaultState string
}

func NewProteinsHandler(proteins repository.ProteinRepository, residues repository.ResidueRepository, defaultState string) *ProteinsHandler {
	return &ProteinsHandler{proteins: proteins, residues: residues, defaultState: defaultState}
}

// List returns proteins in entry-name order; ?constructs=true narrows
// the listing to engineered constructs.
func (h *ProteinsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	seqType := ""
	if r.URL.Query().Get("constructs") == "true" {
		seqType = build.SequenceTypeModified
	}
	items, total, err := h.proteins.List(r.Context(), seqType, (page-1)*size, size)
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

type proteinDetail struct {
	models.Protein
	ResidueCount int64 `json:"residue_count"`
}

// Get returns one protein by entry name, with the residue count of its
// conformation in the default state.
func (h *ProteinsHandler) Get(w http.ResponseWriter, r *http.Request) {
	entryName := chi.URLParam(r, "entry_name")
	p, err := h.proteins.GetByEntryName(r.Context(), entryName)
	if err != nil {
		status := http.StatusInternalServerError
		if appErr.IsCode(err, appErr.CodeNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}

	var count int64
	if pc, err := h.proteins.ConformationByEntryName(r.Context(), entryName, h.defaultState); err == nil {
		count, _ = h.residues.CountByConformation(r.Context(), pc.ID)
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    proteinDetail{Protein: *p, ResidueCount: count},
	})
}

func pagination(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	size, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, types.APIResponse{Success: false, Error: types.FromAppError(err)})
}
