package main

import (
	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/models"
)

// registerModels returns all models that need migration, parents before
// dependents so AutoMigrate can create foreign keys in one pass.
func registerModels() []interface{} {
	return []interface{}{
		// Shared reference data
		&models.WebResource{},
		&models.WebLink{},

		// Ligand catalog
		&models.LigandType{},
		&models.LigandProperties{},
		&models.Ligand{},

		// Site content
		&models.Documentation{},
		&models.News{},
		&models.Page{},

		// Literature
		&models.PublicationJournal{},
		&models.Publication{},

		// Protein structure vocabulary
		&models.ProteinSegment{},
		&models.ResidueNumberingScheme{},
		&models.ResidueGenericNumber{},
		&models.ProteinAnomalyType{},
		&models.ProteinAnomaly{},
		&models.ProteinAnomalyRuleSet{},
		&models.ProteinAnomalyRule{},

		// Proteins, conformations, residues
		&models.ProteinState{},
		&models.ProteinSequenceType{},
		&models.ProteinSource{},
		&models.Protein{},
		&models.ProteinConformation{},
		&models.Residue{},

		// Construct fusions
		&models.ProteinFusion{},
		&models.ProteinFusionProtein{},
	}
}

// runMigrations executes all database migrations.
func runMigrations(db *gorm.DB) error {
	// gen_random_uuid() defaults need pgcrypto before any table exists.
	if err := enableUUIDExtension(db); err != nil {
		return err
	}

	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}

	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle.
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addUnresolvedLigandIndex,
	}

	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}

	return nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// addUnresolvedLigandIndex speeds up the ligand loader's check for
// existing structure-less ligands.
func addUnresolvedLigandIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ligand_properties_unresolved
		ON ligand_properties(id)
		WHERE smiles IS NULL
	`).Error
}
