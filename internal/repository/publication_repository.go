package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

type PublicationRepository interface {
	GetOrCreateJournal(ctx context.Context, slug, name string) (*models.PublicationJournal, bool, error)
	GetOrCreate(ctx context.Context, pub *models.Publication) (bool, error)
	List(ctx context.Context, offset, limit int) ([]models.Publication, int64, error)
}

type publicationRepository struct {
	db *gorm.DB
}

func NewPublicationRepository(db *gorm.DB) PublicationRepository {
	return &publicationRepository{db: db}
}

func (r *publicationRepository) GetOrCreateJournal(ctx context.Context, slug, name string) (*models.PublicationJournal, bool, error) {
	var j models.PublicationJournal
	created, err := firstOrCreate(ctx, r.db, &j,
		models.PublicationJournal{Slug: slug}, models.PublicationJournal{Name: name})
	if err != nil {
		return nil, false, err
	}
	return &j, created, nil
}

func (r *publicationRepository) GetOrCreate(ctx context.Context, pub *models.Publication) (bool, error) {
	query := models.Publication{
		Title:     pub.Title,
		Authors:   pub.Authors,
		Year:      pub.Year,
		JournalID: pub.JournalID,
		WebLinkID: pub.WebLinkID,
	}
	attrs := models.Publication{Reference: pub.Reference}
	return firstOrCreate(ctx, r.db, pub, query, attrs)
}

func (r *publicationRepository) List(ctx context.Context, offset, limit int) ([]models.Publication, int64, error) {
	var out []models.Publication
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Publication{}).Count(&total).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "count publications failed")
	}
	if err := r.db.WithContext(ctx).Preload("Journal").Preload("WebLink").Preload("WebLink.WebResource").
		Order("year DESC, title").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "list publications failed")
	}
	return out, total, nil
}
