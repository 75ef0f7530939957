package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

// ProteinRepository resolves parent proteins and persists constructs.
type ProteinRepository interface {
	// ConformationByEntryName loads the (protein, state) pair for a
	// protein entry name, with the protein's numbering scheme preloaded.
	ConformationByEntryName(ctx context.Context, entryName, stateSlug string) (*models.ProteinConformation, error)

	GetOrCreateState(ctx context.Context, slug, name string) (*models.ProteinState, bool, error)
	GetOrCreateSequenceType(ctx context.Context, slug, name string) (*models.ProteinSequenceType, bool, error)
	GetOrCreateSource(ctx context.Context, name string) (*models.ProteinSource, bool, error)

	Create(ctx context.Context, p *models.Protein) error
	Update(ctx context.Context, p *models.Protein) error
	CreateConformation(ctx context.Context, pc *models.ProteinConformation) error

	// DeleteBySequenceType removes every protein tagged with the slug and,
	// through cascades, its conformations, residues and fusion placements.
	DeleteBySequenceType(ctx context.Context, slug string) (int64, error)

	GetByEntryName(ctx context.Context, entryName string) (*models.Protein, error)
	List(ctx context.Context, sequenceTypeSlug string, offset, limit int) ([]models.Protein, int64, error)
}

type proteinRepository struct {
	db *gorm.DB
}

func NewProteinRepository(db *gorm.DB) ProteinRepository {
	return &proteinRepository{db: db}
}

func (r *proteinRepository) ConformationByEntryName(ctx context.Context, entryName, stateSlug string) (*models.ProteinConformation, error) {
	var pc models.ProteinConformation
	err := r.db.WithContext(ctx).
		Joins("JOIN proteins ON proteins.id = protein_conformations.protein_id").
		Joins("JOIN protein_states ON protein_states.id = protein_conformations.state_id").
		Where("proteins.entry_name = ? AND protein_states.slug = ?", entryName, stateSlug).
		Preload("Protein").
		Preload("Protein.ResidueNumberingScheme").
		Preload("State").
		First(&pc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, appErr.Newf(appErr.CodeNotFound, "conformation of %s in state %s not found", entryName, stateSlug)
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get conformation failed")
	}
	return &pc, nil
}

func (r *proteinRepository) GetOrCreateState(ctx context.Context, slug, name string) (*models.ProteinState, bool, error) {
	var s models.ProteinState
	created, err := firstOrCreate(ctx, r.db, &s,
		models.ProteinState{Slug: slug}, models.ProteinState{Name: name})
	if err != nil {
		return nil, false, err
	}
	return &s, created, nil
}

func (r *proteinRepository) GetOrCreateSequenceType(ctx context.Context, slug, name string) (*models.ProteinSequenceType, bool, error) {
	var st models.ProteinSequenceType
	created, err := firstOrCreate(ctx, r.db, &st,
		models.ProteinSequenceType{Slug: slug}, models.ProteinSequenceType{Name: name})
	if err != nil {
		return nil, false, err
	}
	return &st, created, nil
}

func (r *proteinRepository) GetOrCreateSource(ctx context.Context, name string) (*models.ProteinSource, bool, error) {
	var src models.ProteinSource
	created, err := firstOrCreate(ctx, r.db, &src, models.ProteinSource{Name: name}, nil)
	if err != nil {
		return nil, false, err
	}
	return &src, created, nil
}

func (r *proteinRepository) Create(ctx context.Context, p *models.Protein) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeConflict, "create protein failed")
	}
	return nil
}

func (r *proteinRepository) Update(ctx context.Context, p *models.Protein) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "update protein failed")
	}
	return nil
}

func (r *proteinRepository) CreateConformation(ctx context.Context, pc *models.ProteinConformation) error {
	if err := r.db.WithContext(ctx).Create(pc).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeConflict, "create conformation failed")
	}
	return nil
}

func (r *proteinRepository) DeleteBySequenceType(ctx context.Context, slug string) (int64, error) {
	var st models.ProteinSequenceType
	if err := r.db.WithContext(ctx).First(&st, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, appErr.Newf(appErr.CodeNotFound, "sequence type %s not found", slug)
		}
		return 0, appErr.Wrap(err, appErr.CodeInternal, "get sequence type failed")
	}
	res := r.db.WithContext(ctx).Where("sequence_type_id = ?", st.ID).Delete(&models.Protein{})
	if res.Error != nil {
		return 0, appErr.Wrap(res.Error, appErr.CodeInternal, "delete proteins failed")
	}
	return res.RowsAffected, nil
}

func (r *proteinRepository) GetByEntryName(ctx context.Context, entryName string) (*models.Protein, error) {
	var p models.Protein
	err := r.db.WithContext(ctx).
		Preload("SequenceType").Preload("Source").Preload("ResidueNumberingScheme").
		First(&p, "entry_name = ?", entryName).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, appErr.Newf(appErr.CodeNotFound, "protein %s not found", entryName)
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get protein failed")
	}
	return &p, nil
}

func (r *proteinRepository) List(ctx context.Context, sequenceTypeSlug string, offset, limit int) ([]models.Protein, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Protein{})
	if sequenceTypeSlug != "" {
		q = q.Joins("JOIN protein_sequence_types ON protein_sequence_types.id = proteins.sequence_type_id").
			Where("protein_sequence_types.slug = ?", sequenceTypeSlug)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "count proteins failed")
	}
	var out []models.Protein
	if err := q.Preload("SequenceType").Order("entry_name").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "list proteins failed")
	}
	return out, total, nil
}
