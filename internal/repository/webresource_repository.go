package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

// WebResourceRepository resolves external resources and their links by
// natural key.
type WebResourceRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.WebResource, error)
	GetOrCreate(ctx context.Context, slug string, defaults models.WebResource) (*models.WebResource, bool, error)
	GetOrCreateLink(ctx context.Context, index string, resourceID uuid.UUID) (*models.WebLink, bool, error)
}

type webResourceRepository struct {
	db *gorm.DB
}

func NewWebResourceRepository(db *gorm.DB) WebResourceRepository {
	return &webResourceRepository{db: db}
}

func (r *webResourceRepository) GetBySlug(ctx context.Context, slug string) (*models.WebResource, error) {
	var wr models.WebResource
	if err := r.db.WithContext(ctx).First(&wr, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, appErr.Newf(appErr.CodeNotFound, "web resource %s not found", slug)
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get web resource failed")
	}
	return &wr, nil
}

func (r *webResourceRepository) GetOrCreate(ctx context.Context, slug string, defaults models.WebResource) (*models.WebResource, bool, error) {
	var wr models.WebResource
	created, err := firstOrCreate(ctx, r.db, &wr, models.WebResource{Slug: slug}, defaults)
	if err != nil {
		return nil, false, err
	}
	return &wr, created, nil
}

func (r *webResourceRepository) GetOrCreateLink(ctx context.Context, index string, resourceID uuid.UUID) (*models.WebLink, bool, error) {
	var wl models.WebLink
	created, err := firstOrCreate(ctx, r.db, &wl,
		models.WebLink{Index: index, WebResourceID: resourceID}, nil)
	if err != nil {
		return nil, false, err
	}
	return &wl, created, nil
}
