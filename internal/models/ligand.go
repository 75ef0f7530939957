package models

import (
	"time"

	"github.com/google/uuid"
)

// LigandType classifies ligands (small molecule, peptide, ...).
type LigandType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name string    `gorm:"not null" json:"name"`
}

// LigandProperties carries the chemical identity shared by aliases of the
// same compound. SMILES and InChIKey are nullable: some source entries
// name a ligand before its structure is determined.
type LigandProperties struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SMILES       *string     `gorm:"column:smiles" json:"smiles"`
	InChIKey     *string     `gorm:"column:inchikey" json:"inchikey"`
	LigandTypeID *uuid.UUID  `gorm:"type:uuid" json:"ligand_type_id"`
	LigandType   *LigandType `json:"ligand_type,omitempty"`
	WebLinks     []WebLink   `gorm:"many2many:ligand_properties_web_links" json:"web_links,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Ligand is a named compound; several ligands (aliases) may share one
// LigandProperties row.
type Ligand struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string           `gorm:"not null;index:idx_ligands_name_props,unique" json:"name"`
	Canonical      bool             `gorm:"not null;default:false" json:"canonical"`
	AmbiguousAlias *string          `json:"ambiguous_alias"`
	PropertiesID   uuid.UUID        `gorm:"type:uuid;not null;index:idx_ligands_name_props,unique" json:"properties_id"`
	Properties     LigandProperties `gorm:"foreignKey:PropertiesID" json:"properties"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
