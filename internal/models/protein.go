package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProteinState is a conformational state (inactive, active, ...).
type ProteinState struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name string    `gorm:"not null" json:"name"`
}

// ProteinSequenceType tags a protein's sequence as wild-type, modified,
// etc. Constructs are the proteins tagged "mod"; purge deletes by it.
type ProteinSequenceType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name string    `gorm:"not null" json:"name"`
}

type ProteinSource struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

// Protein is a reference protein or an engineered construct. A construct
// carries a parent back-reference, the "mod" sequence type, and the
// definition it was built from in ConstructMeta.
type Protein struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EntryName string    `gorm:"uniqueIndex;not null" json:"entry_name"`
	Name     string     `gorm:"not null" json:"name"`
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	Parent   *Protein   `gorm:"foreignKey:ParentID" json:"-"`

	Family  string `gorm:"index" json:"family"`
	Species string `gorm:"index" json:"species"`

	SequenceTypeID uuid.UUID           `gorm:"type:uuid;not null;index" json:"sequence_type_id"`
	SequenceType   ProteinSequenceType `json:"sequence_type"`
	SourceID       uuid.UUID           `gorm:"type:uuid;not null" json:"source_id"`
	Source         ProteinSource       `json:"source"`

	ResidueNumberingSchemeID uuid.UUID              `gorm:"type:uuid;not null" json:"residue_numbering_scheme_id"`
	ResidueNumberingScheme   ResidueNumberingScheme `json:"residue_numbering_scheme"`

	Sequence string `gorm:"type:text;not null" json:"sequence"`

	// ConstructMeta records the parsed construct definition (truncations,
	// mutations, fusions) for provenance; null for reference proteins.
	ConstructMeta datatypes.JSON `gorm:"type:jsonb" json:"construct_meta,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProteinConformation is one (protein, state) pair; residues hang off it.
type ProteinConformation struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProteinID uuid.UUID    `gorm:"type:uuid;not null;index:idx_conformations_protein_state,unique" json:"protein_id"`
	Protein   Protein      `gorm:"constraint:OnDelete:CASCADE" json:"protein"`
	StateID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_conformations_protein_state,unique" json:"state_id"`
	State     ProteinState `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
}
