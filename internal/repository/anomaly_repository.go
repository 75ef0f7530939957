package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

type AnomalyRepository interface {
	GetOrCreateType(ctx context.Context, slug, name string) (*models.ProteinAnomalyType, bool, error)
	GetOrCreateAnomaly(ctx context.Context, typeID, genericNumberID uuid.UUID) (*models.ProteinAnomaly, bool, error)
	CreateRuleSet(ctx context.Context, anomalyID uuid.UUID, exclusive bool) (*models.ProteinAnomalyRuleSet, error)
	CreateRule(ctx context.Context, rule *models.ProteinAnomalyRule) error
}

type anomalyRepository struct {
	db *gorm.DB
}

func NewAnomalyRepository(db *gorm.DB) AnomalyRepository {
	return &anomalyRepository{db: db}
}

func (r *anomalyRepository) GetOrCreateType(ctx context.Context, slug, name string) (*models.ProteinAnomalyType, bool, error) {
	var at models.ProteinAnomalyType
	created, err := firstOrCreate(ctx, r.db, &at,
		models.ProteinAnomalyType{Slug: slug}, models.ProteinAnomalyType{Name: name})
	if err != nil {
		return nil, false, err
	}
	return &at, created, nil
}

func (r *anomalyRepository) GetOrCreateAnomaly(ctx context.Context, typeID, genericNumberID uuid.UUID) (*models.ProteinAnomaly, bool, error) {
	var pa models.ProteinAnomaly
	created, err := firstOrCreate(ctx, r.db, &pa,
		models.ProteinAnomaly{AnomalyTypeID: typeID, GenericNumberID: genericNumberID}, nil)
	if err != nil {
		return nil, false, err
	}
	return &pa, created, nil
}

func (r *anomalyRepository) CreateRuleSet(ctx context.Context, anomalyID uuid.UUID, exclusive bool) (*models.ProteinAnomalyRuleSet, error) {
	rs := models.ProteinAnomalyRuleSet{ProteinAnomalyID: anomalyID, Exclusive: exclusive}
	if err := r.db.WithContext(ctx).Create(&rs).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "create anomaly rule set failed")
	}
	return &rs, nil
}

func (r *anomalyRepository) CreateRule(ctx context.Context, rule *models.ProteinAnomalyRule) error {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create anomaly rule failed")
	}
	return nil
}
