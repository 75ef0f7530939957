package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

// SchemeRepository covers residue numbering schemes and their generic
// number labels.
type SchemeRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.ResidueNumberingScheme, error)
	GetOrCreate(ctx context.Context, slug string, defaults models.ResidueNumberingScheme) (*models.ResidueNumberingScheme, bool, error)
	GetOrCreateGenericNumber(ctx context.Context, label string, schemeID uuid.UUID, segmentID *uuid.UUID) (*models.ResidueGenericNumber, bool, error)
}

type schemeRepository struct {
	db *gorm.DB
}

func NewSchemeRepository(db *gorm.DB) SchemeRepository {
	return &schemeRepository{db: db}
}

func (r *schemeRepository) GetBySlug(ctx context.Context, slug string) (*models.ResidueNumberingScheme, error) {
	var s models.ResidueNumberingScheme
	if err := r.db.WithContext(ctx).First(&s, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, appErr.Newf(appErr.CodeNotFound, "numbering scheme %s not found", slug)
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get numbering scheme failed")
	}
	return &s, nil
}

func (r *schemeRepository) GetOrCreate(ctx context.Context, slug string, defaults models.ResidueNumberingScheme) (*models.ResidueNumberingScheme, bool, error) {
	var s models.ResidueNumberingScheme
	created, err := firstOrCreate(ctx, r.db, &s, models.ResidueNumberingScheme{Slug: slug}, defaults)
	if err != nil {
		return nil, false, err
	}
	return &s, created, nil
}

func (r *schemeRepository) GetOrCreateGenericNumber(ctx context.Context, label string, schemeID uuid.UUID, segmentID *uuid.UUID) (*models.ResidueGenericNumber, bool, error) {
	var gn models.ResidueGenericNumber
	created, err := firstOrCreate(ctx, r.db, &gn,
		models.ResidueGenericNumber{Label: label, SchemeID: schemeID},
		models.ResidueGenericNumber{ProteinSegmentID: segmentID})
	if err != nil {
		return nil, false, err
	}
	return &gn, created, nil
}
