package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/openreceptor/receptordb/internal/models"
)

type MemoryPublicationRepo struct {
	mu       sync.RWMutex
	journals map[string]*models.PublicationJournal
	pubs     map[string]*models.Publication
}

func NewMemoryPublicationRepo() *MemoryPublicationRepo {
	return &MemoryPublicationRepo{
		journals: map[string]*models.PublicationJournal{},
		pubs:     map[string]*models.Publication{},
	}
}

var _ PublicationRepository = (*MemoryPublicationRepo)(nil)

func (r *MemoryPublicationRepo) GetOrCreateJournal(_ context.Context, slug, name string) (*models.PublicationJournal, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.journals[slug]; ok {
		return j, false, nil
	}
	j := &models.PublicationJournal{ID: uuid.New(), Slug: slug, Name: name}
	r.journals[slug] = j
	return j, true, nil
}

func pubKey(p *models.Publication) string {
	return fmt.Sprintf("%s|%s|%d|%s|%s", p.Title, p.Authors, p.Year, p.JournalID, p.WebLinkID)
}

func (r *MemoryPublicationRepo) GetOrCreate(_ context.Context, pub *models.Publication) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pubKey(pub)
	if existing, ok := r.pubs[key]; ok {
		*pub = *existing
		return false, nil
	}
	pub.ID = uuid.New()
	stored := *pub
	r.pubs[key] = &stored
	return true, nil
}

func (r *MemoryPublicationRepo) List(_ context.Context, offset, limit int) ([]models.Publication, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]models.Publication, 0, len(r.pubs))
	for _, p := range r.pubs {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Year != all[j].Year {
			return all[i].Year > all[j].Year
		}
		return all[i].Title < all[j].Title
	})
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

type memoryLigand struct {
	ligand *models.Ligand
	props  *models.LigandProperties
}

type MemoryLigandRepo struct {
	mu      sync.RWMutex
	types   map[string]*models.LigandType
	props   []*models.LigandProperties
	ligands []*memoryLigand
}

func NewMemoryLigandRepo() *MemoryLigandRepo {
	return &MemoryLigandRepo{types: map[string]*models.LigandType{}}
}

var _ LigandRepository = (*MemoryLigandRepo)(nil)

func (r *MemoryLigandRepo) GetOrCreateType(_ context.Context, slug, name string) (*models.LigandType, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lt, ok := r.types[slug]; ok {
		return lt, false, nil
	}
	lt := &models.LigandType{ID: uuid.New(), Slug: slug, Name: name}
	r.types[slug] = lt
	return lt, true, nil
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (r *MemoryLigandRepo) GetOrCreateProperties(_ context.Context, smiles, inchikey *string, typeID *uuid.UUID) (*models.LigandProperties, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, lp := range r.props {
		if strPtrEq(lp.SMILES, smiles) && strPtrEq(lp.InChIKey, inchikey) {
			return lp, false, nil
		}
	}
	lp := &models.LigandProperties{ID: uuid.New(), SMILES: smiles, InChIKey: inchikey, LigandTypeID: typeID}
	r.props = append(r.props, lp)
	return lp, true, nil
}

func (r *MemoryLigandRepo) CreateProperties(_ context.Context, props *models.LigandProperties) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	props.ID = uuid.New()
	r.props = append(r.props, props)
	return nil
}

func (r *MemoryLigandRepo) AddPropertiesLink(_ context.Context, props *models.LigandProperties, link *models.WebLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, wl := range props.WebLinks {
		if wl.ID == link.ID {
			return nil
		}
	}
	props.WebLinks = append(props.WebLinks, *link)
	return nil
}

func (r *MemoryLigandRepo) GetOrCreateLigand(_ context.Context, lig *models.Ligand) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ml := range r.ligands {
		if ml.ligand.Name == lig.Name && ml.ligand.PropertiesID == lig.PropertiesID {
			*lig = *ml.ligand
			return false, nil
		}
	}
	lig.ID = uuid.New()
	stored := *lig
	var props *models.LigandProperties
	for _, lp := range r.props {
		if lp.ID == lig.PropertiesID {
			props = lp
			break
		}
	}
	r.ligands = append(r.ligands, &memoryLigand{ligand: &stored, props: props})
	return true, nil
}

func (r *MemoryLigandRepo) UnresolvedExists(_ context.Context, name string, canonical bool, alias *string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ml := range r.ligands {
		if ml.ligand.Name != name || ml.ligand.Canonical != canonical || !strPtrEq(ml.ligand.AmbiguousAlias, alias) {
			continue
		}
		if ml.props != nil && ml.props.SMILES == nil {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryLigandRepo) List(_ context.Context, offset, limit int) ([]models.Ligand, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]models.Ligand, 0, len(r.ligands))
	for _, ml := range r.ligands {
		all = append(all, *ml.ligand)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
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
