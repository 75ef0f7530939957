package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
)

type MemoryProteinRepo struct {
	mu            sync.RWMutex
	states        map[string]*models.ProteinState
	seqTypes      map[string]*models.ProteinSequenceType
	sources       map[string]*models.ProteinSource
	proteins      map[string]*models.Protein // entry name -> protein
	conformations []*models.ProteinConformation

	// Residues, when set, receives cascade deletes on purge the way the
	// database foreign keys would.
	Residues *MemoryResidueRepo
}

func NewMemoryProteinRepo() *MemoryProteinRepo {
	return &MemoryProteinRepo{
		states:   map[string]*models.ProteinState{},
		seqTypes: map[string]*models.ProteinSequenceType{},
		sources:  map[string]*models.ProteinSource{},
		proteins: map[string]*models.Protein{},
	}
}

var _ ProteinRepository = (*MemoryProteinRepo)(nil)

func (r *MemoryProteinRepo) ConformationByEntryName(_ context.Context, entryName, stateSlug string) (*models.ProteinConformation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.proteins[entryName]
	if !ok {
		return nil, appErr.Newf(appErr.CodeNotFound, "conformation of %s in state %s not found", entryName, stateSlug)
	}
	st, ok := r.states[stateSlug]
	if !ok {
		return nil, appErr.Newf(appErr.CodeNotFound, "conformation of %s in state %s not found", entryName, stateSlug)
	}
	for _, pc := range r.conformations {
		if pc.ProteinID == p.ID && pc.StateID == st.ID {
			out := *pc
			out.Protein = *p
			out.State = *st
			return &out, nil
		}
	}
	return nil, appErr.Newf(appErr.CodeNotFound, "conformation of %s in state %s not found", entryName, stateSlug)
}

func (r *MemoryProteinRepo) GetOrCreateState(_ context.Context, slug, name string) (*models.ProteinState, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.states[slug]; ok {
		return s, false, nil
	}
	s := &models.ProteinState{ID: uuid.New(), Slug: slug, Name: name}
	r.states[slug] = s
	return s, true, nil
}

func (r *MemoryProteinRepo) GetOrCreateSequenceType(_ context.Context, slug, name string) (*models.ProteinSequenceType, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.seqTypes[slug]; ok {
		return st, false, nil
	}
	st := &models.ProteinSequenceType{ID: uuid.New(), Slug: slug, Name: name}
	r.seqTypes[slug] = st
	return st, true, nil
}

func (r *MemoryProteinRepo) GetOrCreateSource(_ context.Context, name string) (*models.ProteinSource, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if src, ok := r.sources[name]; ok {
		return src, false, nil
	}
	src := &models.ProteinSource{ID: uuid.New(), Name: name}
	r.sources[name] = src
	return src, true, nil
}

func (r *MemoryProteinRepo) Create(_ context.Context, p *models.Protein) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.proteins[p.EntryName]; exists {
		return appErr.Newf(appErr.CodeConflict, "protein %s already exists", p.EntryName)
	}
	p.ID = uuid.New()
	stored := *p
	r.proteins[p.EntryName] = &stored
	return nil
}

func (r *MemoryProteinRepo) Update(_ context.Context, p *models.Protein) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *p
	r.proteins[p.EntryName] = &stored
	return nil
}

func (r *MemoryProteinRepo) CreateConformation(_ context.Context, pc *models.ProteinConformation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pc.ID = uuid.New()
	stored := *pc
	r.conformations = append(r.conformations, &stored)
	return nil
}

func (r *MemoryProteinRepo) DeleteBySequenceType(_ context.Context, slug string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.seqTypes[slug]
	if !ok {
		return 0, appErr.Newf(appErr.CodeNotFound, "sequence type %s not found", slug)
	}
	var deleted int64
	for name, p := range r.proteins {
		if p.SequenceTypeID != st.ID {
			continue
		}
		kept := r.conformations[:0]
		for _, pc := range r.conformations {
			if pc.ProteinID == p.ID {
				if r.Residues != nil {
					r.Residues.deleteByConformation(pc.ID)
				}
				continue
			}
			kept = append(kept, pc)
		}
		r.conformations = kept
		delete(r.proteins, name)
		deleted++
	}
	return deleted, nil
}

func (r *MemoryProteinRepo) GetByEntryName(_ context.Context, entryName string) (*models.Protein, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.proteins[entryName]; ok {
		out := *p
		return &out, nil
	}
	return nil, appErr.Newf(appErr.CodeNotFound, "protein %s not found", entryName)
}

func (r *MemoryProteinRepo) List(_ context.Context, sequenceTypeSlug string, offset, limit int) ([]models.Protein, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var typeID *uuid.UUID
	if sequenceTypeSlug != "" {
		st, ok := r.seqTypes[sequenceTypeSlug]
		if !ok {
			return nil, 0, nil
		}
		typeID = &st.ID
	}
	all := make([]models.Protein, 0, len(r.proteins))
	for _, p := range r.proteins {
		if typeID != nil && p.SequenceTypeID != *typeID {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].EntryName < all[j].EntryName })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// Conformations returns a snapshot for assertions in tests.
func (r *MemoryProteinRepo) Conformations() []models.ProteinConformation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ProteinConformation, 0, len(r.conformations))
	for _, pc := range r.conformations {
		out = append(out, *pc)
	}
	return out
}

type MemoryResidueRepo struct {
	mu     sync.RWMutex
	byConf map[uuid.UUID]map[int]*models.Residue
}

func NewMemoryResidueRepo() *MemoryResidueRepo {
	return &MemoryResidueRepo{byConf: map[uuid.UUID]map[int]*models.Residue{}}
}

var _ ResidueRepository = (*MemoryResidueRepo)(nil)

func (r *MemoryResidueRepo) ListByConformation(_ context.Context, conformationID uuid.UUID) ([]models.Residue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byNum := r.byConf[conformationID]
	out := make([]models.Residue, 0, len(byNum))
	for _, res := range byNum {
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceNumber < out[j].SequenceNumber })
	return out, nil
}

func (r *MemoryResidueRepo) GetByNumber(_ context.Context, conformationID uuid.UUID, sequenceNumber int) (*models.Residue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if res, ok := r.byConf[conformationID][sequenceNumber]; ok {
		out := *res
		return &out, nil
	}
	return nil, appErr.Newf(appErr.CodeNotFound, "residue %d not found in conformation", sequenceNumber)
}

func (r *MemoryResidueRepo) Create(_ context.Context, res *models.Residue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byNum, ok := r.byConf[res.ProteinConformationID]
	if !ok {
		byNum = map[int]*models.Residue{}
		r.byConf[res.ProteinConformationID] = byNum
	}
	if _, exists := byNum[res.SequenceNumber]; exists {
		return appErr.Newf(appErr.CodeConflict, "residue %d already exists in conformation", res.SequenceNumber)
	}
	res.ID = uuid.New()
	stored := *res
	byNum[res.SequenceNumber] = &stored
	return nil
}

func (r *MemoryResidueRepo) AddAlternativeGenericNumbers(_ context.Context, res *models.Residue, gns []models.ResidueGenericNumber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byConf[res.ProteinConformationID][res.SequenceNumber]
	if !ok {
		return appErr.Newf(appErr.CodeNotFound, "residue %d not found in conformation", res.SequenceNumber)
	}
	stored.AlternativeGenericNumbers = append(stored.AlternativeGenericNumbers, gns...)
	res.AlternativeGenericNumbers = stored.AlternativeGenericNumbers
	return nil
}

func (r *MemoryResidueRepo) CountByConformation(_ context.Context, conformationID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byConf[conformationID])), nil
}

func (r *MemoryResidueRepo) deleteByConformation(conformationID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byConf, conformationID)
}
