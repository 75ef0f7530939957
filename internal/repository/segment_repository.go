package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

type SegmentRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.ProteinSegment, error)
	GetOrCreate(ctx context.Context, slug string, defaults models.ProteinSegment) (*models.ProteinSegment, bool, error)
}

type segmentRepository struct {
	db *gorm.DB
}

func NewSegmentRepository(db *gorm.DB) SegmentRepository {
	return &segmentRepository{db: db}
}

func (r *segmentRepository) GetBySlug(ctx context.Context, slug string) (*models.ProteinSegment, error) {
	var s models.ProteinSegment
	if err := r.db.WithContext(ctx).First(&s, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, appErr.Newf(appErr.CodeNotFound, "protein segment %s not found", slug)
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get protein segment failed")
	}
	return &s, nil
}

func (r *segmentRepository) GetOrCreate(ctx context.Context, slug string, defaults models.ProteinSegment) (*models.ProteinSegment, bool, error) {
	var s models.ProteinSegment
	created, err := firstOrCreate(ctx, r.db, &s, models.ProteinSegment{Slug: slug}, defaults)
	if err != nil {
		return nil, false, err
	}
	return &s, created, nil
}
