package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

type MemorySegmentRepo struct {
	mu       sync.RWMutex
	segments map[string]*models.ProteinSegment
}

func NewMemorySegmentRepo() *MemorySegmentRepo {
	return &MemorySegmentRepo{segments: map[string]*models.ProteinSegment{}}
}

var _ SegmentRepository = (*MemorySegmentRepo)(nil)

func (r *MemorySegmentRepo) GetBySlug(_ context.Context, slug string) (*models.ProteinSegment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.segments[slug]; ok {
		return s, nil
	}
	return nil, appErr.Newf(appErr.CodeNotFound, "protein segment %s not found", slug)
}

func (r *MemorySegmentRepo) GetOrCreate(_ context.Context, slug string, defaults models.ProteinSegment) (*models.ProteinSegment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.segments[slug]; ok {
		return s, false, nil
	}
	s := defaults
	s.ID = uuid.New()
	s.Slug = slug
	r.segments[slug] = &s
	return &s, true, nil
}

type MemorySchemeRepo struct {
	mu      sync.RWMutex
	schemes map[string]*models.ResidueNumberingScheme
	gns     map[string]*models.ResidueGenericNumber // label|schemeID
}

func NewMemorySchemeRepo() *MemorySchemeRepo {
	return &MemorySchemeRepo{
		schemes: map[string]*models.ResidueNumberingScheme{},
		gns:     map[string]*models.ResidueGenericNumber{},
	}
}

var _ SchemeRepository = (*MemorySchemeRepo)(nil)

func (r *MemorySchemeRepo) GetBySlug(_ context.Context, slug string) (*models.ResidueNumberingScheme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.schemes[slug]; ok {
		return s, nil
	}
	return nil, appErr.Newf(appErr.CodeNotFound, "numbering scheme %s not found", slug)
}

func (r *MemorySchemeRepo) GetOrCreate(_ context.Context, slug string, defaults models.ResidueNumberingScheme) (*models.ResidueNumberingScheme, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.schemes[slug]; ok {
		return s, false, nil
	}
	s := defaults
	s.ID = uuid.New()
	s.Slug = slug
	r.schemes[slug] = &s
	return &s, true, nil
}

func (r *MemorySchemeRepo) GetOrCreateGenericNumber(_ context.Context, label string, schemeID uuid.UUID, segmentID *uuid.UUID) (*models.ResidueGenericNumber, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := label + "|" + schemeID.String()
	if gn, ok := r.gns[key]; ok {
		return gn, false, nil
	}
	gn := &models.ResidueGenericNumber{ID: uuid.New(), Label: label, SchemeID: schemeID, ProteinSegmentID: segmentID}
	r.gns[key] = gn
	return gn, true, nil
}

type MemoryAnomalyRepo struct {
	mu        sync.RWMutex
	types     map[string]*models.ProteinAnomalyType
	anomalies map[string]*models.ProteinAnomaly // typeID|gnID
	RuleSets  []*models.ProteinAnomalyRuleSet
	Rules     []*models.ProteinAnomalyRule
}

func NewMemoryAnomalyRepo() *MemoryAnomalyRepo {
	return &MemoryAnomalyRepo{
		types:     map[string]*models.ProteinAnomalyType{},
		anomalies: map[string]*models.ProteinAnomaly{},
	}
}

var _ AnomalyRepository = (*MemoryAnomalyRepo)(nil)

func (r *MemoryAnomalyRepo) GetOrCreateType(_ context.Context, slug, name string) (*models.ProteinAnomalyType, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if at, ok := r.types[slug]; ok {
		return at, false, nil
	}
	at := &models.ProteinAnomalyType{ID: uuid.New(), Slug: slug, Name: name}
	r.types[slug] = at
	return at, true, nil
}

func (r *MemoryAnomalyRepo) GetOrCreateAnomaly(_ context.Context, typeID, genericNumberID uuid.UUID) (*models.ProteinAnomaly, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := typeID.String() + "|" + genericNumberID.String()
	if pa, ok := r.anomalies[key]; ok {
		return pa, false, nil
	}
	pa := &models.ProteinAnomaly{ID: uuid.New(), AnomalyTypeID: typeID, GenericNumberID: genericNumberID}
	r.anomalies[key] = pa
	return pa, true, nil
}

func (r *MemoryAnomalyRepo) CreateRuleSet(_ context.Context, anomalyID uuid.UUID, exclusive bool) (*models.ProteinAnomalyRuleSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rs := &models.ProteinAnomalyRuleSet{ID: uuid.New(), ProteinAnomalyID: anomalyID, Exclusive: exclusive}
	r.RuleSets = append(r.RuleSets, rs)
	return rs, nil
}

func (r *MemoryAnomalyRepo) CreateRule(_ context.Context, rule *models.ProteinAnomalyRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule.ID = uuid.New()
	r.Rules = append(r.Rules, rule)
	return nil
}

type MemoryFusionRepo struct {
	mu         sync.RWMutex
	fusions    map[string]*models.ProteinFusion
	Placements []*models.ProteinFusionProtein
}

func NewMemoryFusionRepo() *MemoryFusionRepo {
	return &MemoryFusionRepo{fusions: map[string]*models.ProteinFusion{}}
}

var _ FusionRepository = (*MemoryFusionRepo)(nil)

func (r *MemoryFusionRepo) GetOrCreate(_ context.Context, name, sequence string) (*models.ProteinFusion, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fusions[name]; ok {
		return f, false, nil
	}
	f := &models.ProteinFusion{ID: uuid.New(), Name: name, Sequence: sequence}
	r.fusions[name] = f
	return f, true, nil
}

func (r *MemoryFusionRepo) CreatePlacement(_ context.Context, pfp *models.ProteinFusionProtein) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pfp.ID = uuid.New()
	r.Placements = append(r.Placements, pfp)
	return nil
}
