package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

type FusionRepository interface {
	GetOrCreate(ctx context.Context, name, sequence string) (*models.ProteinFusion, bool, error)
	CreatePlacement(ctx context.Context, pfp *models.ProteinFusionProtein) error
}

type fusionRepository struct {
	db *gorm.DB
}

func NewFusionRepository(db *gorm.DB) FusionRepository {
	return &fusionRepository{db: db}
}

func (r *fusionRepository) GetOrCreate(ctx context.Context, name, sequence string) (*models.ProteinFusion, bool, error) {
	var f models.ProteinFusion
	created, err := firstOrCreate(ctx, r.db, &f,
		models.ProteinFusion{Name: name}, models.ProteinFusion{Sequence: sequence})
	if err != nil {
		return nil, false, err
	}
	return &f, created, nil
}

func (r *fusionRepository) CreatePlacement(ctx context.Context, pfp *models.ProteinFusionProtein) error {
	if err := r.db.WithContext(ctx).Create(pfp).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create fusion placement failed")
	}
	return nil
}
