package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

// Map-backed repositories mirroring the Postgres ones. They exist so the
// build jobs can run against no database at all: unit tests and dry runs
// exercise the same loader code paths through these.

type MemoryWebResourceRepo struct {
	mu        sync.RWMutex
	resources map[string]*models.WebResource
	links     map[uuid.UUID]map[string]*models.WebLink
}

func NewMemoryWebResourceRepo() *MemoryWebResourceRepo {
	return &MemoryWebResourceRepo{
		resources: map[string]*models.WebResource{},
		links:     map[uuid.UUID]map[string]*models.WebLink{},
	}
}

var _ WebResourceRepository = (*MemoryWebResourceRepo)(nil)

func (r *MemoryWebResourceRepo) GetBySlug(_ context.Context, slug string) (*models.WebResource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if wr, ok := r.resources[slug]; ok {
		return wr, nil
	}
	return nil, appErr.Newf(appErr.CodeNotFound, "web resource %s not found", slug)
}

func (r *MemoryWebResourceRepo) GetOrCreate(_ context.Context, slug string, defaults models.WebResource) (*models.WebResource, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wr, ok := r.resources[slug]; ok {
		return wr, false, nil
	}
	wr := defaults
	wr.ID = uuid.New()
	wr.Slug = slug
	r.resources[slug] = &wr
	return &wr, true, nil
}

func (r *MemoryWebResourceRepo) GetOrCreateLink(_ context.Context, index string, resourceID uuid.UUID) (*models.WebLink, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byIndex, ok := r.links[resourceID]
	if !ok {
		byIndex = map[string]*models.WebLink{}
		r.links[resourceID] = byIndex
	}
	if wl, ok := byIndex[index]; ok {
		return wl, false, nil
	}
	wl := &models.WebLink{ID: uuid.New(), Index: index, WebResourceID: resourceID}
	byIndex[index] = wl
	return wl, true, nil
}

type MemoryContentRepo struct {
	mu    sync.RWMutex
	docs  map[string]*models.Documentation
	news  map[string]*models.News
	pages map[string]*models.Page
}

func NewMemoryContentRepo() *MemoryContentRepo {
	return &MemoryContentRepo{
		docs:  map[string]*models.Documentation{},
		news:  map[string]*models.News{},
		pages: map[string]*models.Page{},
	}
}

var _ ContentRepository = (*MemoryContentRepo)(nil)

func (r *MemoryContentRepo) GetOrCreateDocumentation(_ context.Context, doc *models.Documentation) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.docs[doc.Title]; ok {
		*doc = *existing
		return false, nil
	}
	doc.ID = uuid.New()
	stored := *doc
	r.docs[doc.Title] = &stored
	return true, nil
}

func (r *MemoryContentRepo) UpdateDocumentation(_ context.Context, doc *models.Documentation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *doc
	r.docs[doc.Title] = &stored
	return nil
}

func (r *MemoryContentRepo) newsKey(n *models.News) string {
	return n.Image + "|" + n.Date.Format("2006-01-02")
}

func (r *MemoryContentRepo) GetOrCreateNews(_ context.Context, n *models.News) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.newsKey(n)
	if existing, ok := r.news[key]; ok {
		*n = *existing
		return false, nil
	}
	n.ID = uuid.New()
	stored := *n
	r.news[key] = &stored
	return true, nil
}

func (r *MemoryContentRepo) UpdateNews(_ context.Context, n *models.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *n
	r.news[r.newsKey(n)] = &stored
	return nil
}

func (r *MemoryContentRepo) GetOrCreatePage(_ context.Context, p *models.Page) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.pages[p.Title]; ok {
		*p = *existing
		return false, nil
	}
	p.ID = uuid.New()
	stored := *p
	r.pages[p.Title] = &stored
	return true, nil
}

func (r *MemoryContentRepo) UpdatePage(_ context.Context, p *models.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *p
	r.pages[p.Title] = &stored
	return nil
}

func (r *MemoryContentRepo) ListDocumentation(_ context.Context) ([]models.Documentation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Documentation, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *MemoryContentRepo) ListNews(_ context.Context) ([]models.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.News, 0, len(r.news))
	for _, n := range r.news {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *MemoryContentRepo) ListPages(_ context.Context) ([]models.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Page, 0, len(r.pages))
	for _, p := range r.pages {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}
