package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/openreceptor/receptordb/internal/api/types"
	"github.com/openreceptor/receptordb/internal/models"
	"github.com/openreceptor/receptordb/internal/repository"
)

func newProteinsRouter(t *testing.T) (http.Handler, *repository.MemoryProteinRepo, *repository.MemoryResidueRepo) {
	t.Helper()
	ctx := context.Background()
	proteins := repository.NewMemoryProteinRepo()
	residues := repository.NewMemoryResidueRepo()

	state, _, err := proteins.GetOrCreateState(ctx, "inactive", "Inactive")
	require.NoError(t, err)
	wt, _, err := proteins.GetOrCreateSequenceType(ctx, "wt", "Wild-type")
	require.NoError(t, err)
	mod, _, err := proteins.GetOrCreateSequenceType(ctx, "mod", "Modified")
	require.NoError(t, err)
	src, _, err := proteins.GetOrCreateSource(ctx, "SWISSPROT")
	require.NoError(t, err)

	parent := models.Protein{
		EntryName:                "adrb2_human",
		Name:                     "Beta-2 adrenergic receptor",
		SequenceTypeID:           wt.ID,
		SourceID:                 src.ID,
		ResidueNumberingSchemeID: uuid.New(),
		Sequence:                 "MA",
	}
	require.NoError(t, proteins.Create(ctx, &parent))
	pc := models.ProteinConformation{ProteinID: parent.ID, StateID: state.ID}
	require.NoError(t, proteins.CreateConformation(ctx, &pc))
	for i, aa := range parent.Sequence {
		require.NoError(t, residues.Create(ctx, &models.Residue{
			ProteinConformationID: pc.ID,
			SequenceNumber:        i + 1,
			AminoAcid:             string(aa),
		}))
	}

	construct := models.Protein{
		EntryName:                "construct-one",
		Name:                     "Construct One",
		ParentID:                 &parent.ID,
		SequenceTypeID:           mod.ID,
		SourceID:                 src.ID,
		ResidueNumberingSchemeID: parent.ResidueNumberingSchemeID,
		Sequence:                 "A",
	}
	require.NoError(t, proteins.Create(ctx, &construct))

	h := NewProteinsHandler(proteins, residues, "inactive")
	r := chi.NewRouter()
	r.Get("/proteins", h.List)
	r.Get("/proteins/{entry_name}", h.Get)
	return r, proteins, residues
}

func doJSON(t *testing.T, h http.Handler, url string) (*httptest.ResponseRecorder, types.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var resp types.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr, resp
}

func TestProteinsList(t *testing.T) {
	r, _, _ := newProteinsRouter(t)

	rr, resp := doJSON(t, r, "/proteins")
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, resp.Success)
	require.EqualValues(t, 2, resp.Meta.Total)
}

func TestProteinsListConstructsOnly(t *testing.T) {
	r, _, _ := newProteinsRouter(t)

	rr, resp := doJSON(t, r, "/proteins?constructs=true")
	require.Equal(t, http.StatusOK, rr.Code)
	require.EqualValues(t, 1, resp.Meta.Total)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var items []models.Protein
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 1)
	require.Equal(t, "construct-one", items[0].EntryName)
}

func TestProteinGetWithResidueCount(t *testing.T) {
	r, _, _ := newProteinsRouter(t)

	rr, resp := doJSON(t, r, "/proteins/adrb2_human")
	require.Equal(t, http.StatusOK, rr.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var detail struct {
		EntryName    string `json:"entry_name"`
		ResidueCount int64  `json:"residue_count"`
	}
	require.NoError(t, json.Unmarshal(data, &detail))
	require.Equal(t, "adrb2_human", detail.EntryName)
	require.EqualValues(t, 2, detail.ResidueCount)
}

func TestProteinGetNotFound(t *testing.T) {
	r, _, _ := newProteinsRouter(t)

	rr, resp := doJSON(t, r, "/proteins/no_such_entry")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.False(t, resp.Success)
	require.Equal(t, "not_found", resp.Error.Code)
}

func TestCatalogPages(t *testing.T) {
	ctx := context.Background()
	content := repository.NewMemoryContentRepo()
	pubs := repository.NewMemoryPublicationRepo()
	page := models.Page{Title: "About", HTML: "<p>hi</p>"}
	_, err := content.GetOrCreatePage(ctx, &page)
	require.NoError(t, err)

	h := NewCatalogHandler(pubs, content)
	r := chi.NewRouter()
	r.Get("/pages", h.Pages)

	rr, resp := doJSON(t, r, "/pages")
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var items []models.Page
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 1)
	require.Equal(t, "About", items[0].Title)
}
