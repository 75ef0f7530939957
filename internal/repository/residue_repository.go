package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

type ResidueRepository interface {
	// ListByConformation returns residues in ascending sequence-number
	// order with segment and generic-number references preloaded.
	ListByConformation(ctx context.Context, conformationID uuid.UUID) ([]models.Residue, error)
	GetByNumber(ctx context.Context, conformationID uuid.UUID, sequenceNumber int) (*models.Residue, error)
	Create(ctx context.Context, r *models.Residue) error
	// AddAlternativeGenericNumbers appends scheme mappings; purely
	// additive, existing associations stay.
	AddAlternativeGenericNumbers(ctx context.Context, res *models.Residue, gns []models.ResidueGenericNumber) error
	CountByConformation(ctx context.Context, conformationID uuid.UUID) (int64, error)
}

type residueRepository struct {
	db *gorm.DB
}

func NewResidueRepository(db *gorm.DB) ResidueRepository {
	return &residueRepository{db: db}
}

func (r *residueRepository) ListByConformation(ctx context.Context, conformationID uuid.UUID) ([]models.Residue, error) {
	var out []models.Residue
	err := r.db.WithContext(ctx).
		Where("protein_conformation_id = ?", conformationID).
		Preload("ProteinSegment").
		Preload("GenericNumber").
		Preload("DisplayGenericNumber").
		Preload("DisplayGenericNumber.Scheme").
		Preload("AlternativeGenericNumbers").
		Preload("AlternativeGenericNumbers.Scheme").
		Order("sequence_number").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list residues failed")
	}
	return out, nil
}

func (r *residueRepository) GetByNumber(ctx context.Context, conformationID uuid.UUID, sequenceNumber int) (*models.Residue, error) {
	var res models.Residue
	err := r.db.WithContext(ctx).
		Preload("ProteinSegment").
		First(&res, "protein_conformation_id = ? AND sequence_number = ?", conformationID, sequenceNumber).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, appErr.Newf(appErr.CodeNotFound, "residue %d not found in conformation", sequenceNumber)
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get residue failed")
	}
	return &res, nil
}

func (r *residueRepository) Create(ctx context.Context, res *models.Residue) error {
	if err := r.db.WithContext(ctx).Omit("AlternativeGenericNumbers").Create(res).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeConflict, "create residue failed")
	}
	return nil
}

func (r *residueRepository) AddAlternativeGenericNumbers(ctx context.Context, res *models.Residue, gns []models.ResidueGenericNumber) error {
	if len(gns) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(res).Association("AlternativeGenericNumbers").Append(&gns); err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "append alternative generic numbers failed")
	}
	return nil
}

func (r *residueRepository) CountByConformation(ctx context.Context, conformationID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Residue{}).
		Where("protein_conformation_id = ?", conformationID).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count residues failed")
	}
	return n, nil
}
