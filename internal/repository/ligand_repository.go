package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

// LigandRepository materializes ligands, their shared chemical
// properties, and property web links.
type LigandRepository interface {
	GetOrCreateType(ctx context.Context, slug, name string) (*models.LigandType, bool, error)
	GetOrCreateProperties(ctx context.Context, smiles, inchikey *string, typeID *uuid.UUID) (*models.LigandProperties, bool, error)
	CreateProperties(ctx context.Context, props *models.LigandProperties) error
	AddPropertiesLink(ctx context.Context, props *models.LigandProperties, link *models.WebLink) error
	GetOrCreateLigand(ctx context.Context, lig *models.Ligand) (bool, error)
	// UnresolvedExists reports whether a ligand with this identity already
	// exists whose properties have no SMILES. Source entries without a
	// determined structure must not pile up duplicate property rows.
	UnresolvedExists(ctx context.Context, name string, canonical bool, alias *string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]models.Ligand, int64, error)
}

type ligandRepository struct {
	db *gorm.DB
}

func NewLigandRepository(db *gorm.DB) LigandRepository {
	return &ligandRepository{db: db}
}

func (r *ligandRepository) GetOrCreateType(ctx context.Context, slug, name string) (*models.LigandType, bool, error) {
	var lt models.LigandType
	created, err := firstOrCreate(ctx, r.db, &lt, models.LigandType{Slug: slug}, models.LigandType{Name: name})
	if err != nil {
		return nil, false, err
	}
	return &lt, created, nil
}

func (r *ligandRepository) GetOrCreateProperties(ctx context.Context, smiles, inchikey *string, typeID *uuid.UUID) (*models.LigandProperties, bool, error) {
	var lp models.LigandProperties
	// map-based query so NULL smiles/inchikey participate in matching
	query := map[string]any{"smiles": smiles, "inchikey": inchikey}
	created, err := firstOrCreate(ctx, r.db, &lp, query, models.LigandProperties{
		SMILES: smiles, InChIKey: inchikey, LigandTypeID: typeID,
	})
	if err != nil {
		return nil, false, err
	}
	return &lp, created, nil
}

func (r *ligandRepository) CreateProperties(ctx context.Context, props *models.LigandProperties) error {
	if err := r.db.WithContext(ctx).Create(props).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create ligand properties failed")
	}
	return nil
}

func (r *ligandRepository) AddPropertiesLink(ctx context.Context, props *models.LigandProperties, link *models.WebLink) error {
	if err := r.db.WithContext(ctx).Model(props).Association("WebLinks").Append(link); err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "append ligand web link failed")
	}
	return nil
}

func (r *ligandRepository) GetOrCreateLigand(ctx context.Context, lig *models.Ligand) (bool, error) {
	query := models.Ligand{Name: lig.Name, PropertiesID: lig.PropertiesID}
	attrs := models.Ligand{Canonical: lig.Canonical, AmbiguousAlias: lig.AmbiguousAlias}
	return firstOrCreate(ctx, r.db, lig, query, attrs)
}

func (r *ligandRepository) UnresolvedExists(ctx context.Context, name string, canonical bool, alias *string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Ligand{}).
		Joins("JOIN ligand_properties ON ligand_properties.id = ligands.properties_id").
		Where("ligands.name = ? AND ligands.canonical = ? AND ligand_properties.smiles IS NULL", name, canonical)
	if alias == nil {
		q = q.Where("ligands.ambiguous_alias IS NULL")
	} else {
		q = q.Where("ligands.ambiguous_alias = ?", *alias)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "check unresolved ligand failed")
	}
	return count > 0, nil
}

func (r *ligandRepository) List(ctx context.Context, offset, limit int) ([]models.Ligand, int64, error) {
	var out []models.Ligand
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Ligand{}).Count(&total).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "count ligands failed")
	}
	if err := r.db.WithContext(ctx).Preload("Properties").Preload("Properties.LigandType").
		Order("name").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "list ligands failed")
	}
	return out, total, nil
}
