package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

// ContentRepository handles the three page-like catalogs that pair YAML
// metadata with an HTML body.
type ContentRepository interface {
	GetOrCreateDocumentation(ctx context.Context, doc *models.Documentation) (bool, error)
	UpdateDocumentation(ctx context.Context, doc *models.Documentation) error
	GetOrCreateNews(ctx context.Context, n *models.News) (bool, error)
	UpdateNews(ctx context.Context, n *models.News) error
	GetOrCreatePage(ctx context.Context, p *models.Page) (bool, error)
	UpdatePage(ctx context.Context, p *models.Page) error

	ListDocumentation(ctx context.Context) ([]models.Documentation, error)
	ListNews(ctx context.Context) ([]models.News, error)
	ListPages(ctx context.Context) ([]models.Page, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) GetOrCreateDocumentation(ctx context.Context, doc *models.Documentation) (bool, error) {
	query := models.Documentation{Title: doc.Title}
	attrs := models.Documentation{Description: doc.Description, Image: doc.Image}
	return firstOrCreate(ctx, r.db, doc, query, attrs)
}

func (r *contentRepository) UpdateDocumentation(ctx context.Context, doc *models.Documentation) error {
	if err := r.db.WithContext(ctx).Save(doc).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "update documentation failed")
	}
	return nil
}

func (r *contentRepository) GetOrCreateNews(ctx context.Context, n *models.News) (bool, error) {
	query := map[string]any{"image": n.Image, "date": n.Date.Format("2006-01-02")}
	attrs := models.News{Image: n.Image, Date: n.Date}
	return firstOrCreate(ctx, r.db, n, query, attrs)
}

func (r *contentRepository) UpdateNews(ctx context.Context, n *models.News) error {
	if err := r.db.WithContext(ctx).Save(n).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "update news failed")
	}
	return nil
}

func (r *contentRepository) GetOrCreatePage(ctx context.Context, p *models.Page) (bool, error) {
	return firstOrCreate(ctx, r.db, p, models.Page{Title: p.Title}, nil)
}

func (r *contentRepository) UpdatePage(ctx context.Context, p *models.Page) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "update page failed")
	}
	return nil
}

func (r *contentRepository) ListDocumentation(ctx context.Context) ([]models.Documentation, error) {
	var out []models.Documentation
	if err := r.db.WithContext(ctx).Order("title").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list documentation failed")
	}
	return out, nil
}

func (r *contentRepository) ListNews(ctx context.Context) ([]models.News, error) {
	var out []models.News
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list news failed")
	}
	return out, nil
}

func (r *contentRepository) ListPages(ctx context.Context) ([]models.Page, error) {
	var out []models.Page
	if err := r.db.WithContext(ctx).Order("title").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list pages failed")
	}
	return out, nil
}
