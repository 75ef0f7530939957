package build

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
	"github.com/openreceptor/receptordb/pkg/logger"
)

type ligandEntry struct {
	Name           string     `yaml:"name"`
	Canonical      bool       `yaml:"canonical"`
	AmbiguousAlias *string    `yaml:"ambiguous_alias"`
	SMILES         *string    `yaml:"smiles"`
	InChIKey       *string    `yaml:"inchikey"`
	TypeSlug       string     `yaml:"ligand_type_slug"`
	TypeName       string     `yaml:"ligand_type_name"`
	WebLinks       [][]string `yaml:"weblinks"` // [index, resource slug]
}

// loadLigands ingests ligand_data/ligands.yaml. The whole catalog links
// against PubChem, so a missing pubchem resource aborts the stage.
func (l *CommonLoader) loadLigands(ctx context.Context) *Report {
	rep := newReport("ligands")

	if _, err := l.resources.GetBySlug(ctx, "pubchem"); err != nil {
		rep.Err = appErr.Wrap(err, appErr.CodeDependency, "pubchem resource not loaded")
		return rep
	}

	var entries []ligandEntry
	if err := readYAML(l.path("ligand_data", "ligands.yaml"), &entries); err != nil {
		rep.Err = err
		return rep
	}

	for _, entry := range entries {
		if entry.Name == "" {
			rep.failed("(unnamed)", "ligand entry without a name")
			continue
		}
		if err := l.loadLigand(ctx, entry, rep); err != nil {
			rep.failedErr(entry.Name, err)
		}
	}
	return rep
}

func (l *CommonLoader) loadLigand(ctx context.Context, entry ligandEntry, rep *Report) error {
	var typeID *models.LigandType
	if entry.TypeSlug != "" {
		lt, _, err := l.ligands.GetOrCreateType(ctx, entry.TypeSlug, entry.TypeName)
		if err != nil {
			return err
		}
		typeID = lt
	}

	var props *models.LigandProperties
	if entry.SMILES == nil && entry.InChIKey == nil {
		// Undetermined structures get a dedicated properties row so a
		// later source can fill the SMILES in, but never a duplicate one.
		exists, err := l.ligands.UnresolvedExists(ctx, entry.Name, entry.Canonical, entry.AmbiguousAlias)
		if err != nil {
			return err
		}
		if exists {
			rep.skipped(entry.Name, "unresolved ligand already present")
			return nil
		}
		props = &models.LigandProperties{}
		if typeID != nil {
			props.LigandTypeID = &typeID.ID
		}
		if err := l.ligands.CreateProperties(ctx, props); err != nil {
			return err
		}
	} else {
		var ltID *uuid.UUID
		if typeID != nil {
			ltID = &typeID.ID
		}
		p, _, err := l.ligands.GetOrCreateProperties(ctx, entry.SMILES, entry.InChIKey, ltID)
		if err != nil {
			return err
		}
		props = p
	}

	for _, link := range entry.WebLinks {
		if len(link) != 2 {
			rep.failed(entry.Name, "weblink entries must be [index, resource]")
			continue
		}
		wr, err := l.resources.GetBySlug(ctx, link[1])
		if err != nil {
			rep.failed(entry.Name, "weblink resource "+link[1]+" not found")
			continue
		}
		wl, _, err := l.resources.GetOrCreateLink(ctx, link[0], wr.ID)
		if err != nil {
			return err
		}
		if err := l.ligands.AddPropertiesLink(ctx, props, wl); err != nil {
			return err
		}
	}

	lig := models.Ligand{
		Name:           entry.Name,
		Canonical:      entry.Canonical,
		AmbiguousAlias: entry.AmbiguousAlias,
		PropertiesID:   props.ID,
	}
	created, err := l.ligands.GetOrCreateLigand(ctx, &lig)
	if err != nil {
		return err
	}
	if created {
		logger.L().Info("created ligand", zap.String("name", entry.Name))
		rep.created(entry.Name)
	} else {
		rep.exists(entry.Name)
	}
	return nil
}
