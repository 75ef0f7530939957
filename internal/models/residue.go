package models

import (
	"time"

	"github.com/google/uuid"
)

// ResidueNumberingScheme is a generic-numbering convention; schemes may
// derive from a parent scheme.
type ResidueNumberingScheme struct {
	ID        uuid.UUID               `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug      string                  `gorm:"uniqueIndex;not null" json:"slug"`
	ShortName string                  `gorm:"not null" json:"short_name"`
	Name      string                  `gorm:"not null" json:"name"`
	ParentID  *uuid.UUID              `gorm:"type:uuid" json:"parent_id"`
	Parent    *ResidueNumberingScheme `gorm:"foreignKey:ParentID" json:"-"`
}

// ResidueGenericNumber is one scheme-normalized position label, unique
// per scheme.
type ResidueGenericNumber struct {
	ID               uuid.UUID              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Label            string                 `gorm:"not null;index:idx_generic_numbers_label_scheme,unique" json:"label"`
	SchemeID         uuid.UUID              `gorm:"type:uuid;not null;index:idx_generic_numbers_label_scheme,unique" json:"scheme_id"`
	Scheme           ResidueNumberingScheme `json:"scheme"`
	ProteinSegmentID *uuid.UUID             `gorm:"type:uuid" json:"protein_segment_id"`
	ProteinSegment   *ProteinSegment        `json:"protein_segment,omitempty"`
}

// Residue is one amino-acid position of a conformation. SequenceNumber
// is 1-based and unique within the conformation. ProteinSegment is
// nullable: positions replaced by a fusion insertion keep no segment.
type Residue struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProteinConformationID uuid.UUID           `gorm:"type:uuid;not null;index:idx_residues_conformation_seqnum,unique" json:"protein_conformation_id"`
	ProteinConformation   ProteinConformation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SequenceNumber        int                 `gorm:"not null;index:idx_residues_conformation_seqnum,unique" json:"sequence_number"`
	AminoAcid             string              `gorm:"type:varchar(1);not null" json:"amino_acid"`

	ProteinSegmentID *uuid.UUID      `gorm:"type:uuid;index" json:"protein_segment_id"`
	ProteinSegment   *ProteinSegment `json:"protein_segment,omitempty"`

	GenericNumberID        *uuid.UUID            `gorm:"type:uuid" json:"generic_number_id"`
	GenericNumber          *ResidueGenericNumber `gorm:"foreignKey:GenericNumberID" json:"generic_number,omitempty"`
	DisplayGenericNumberID *uuid.UUID            `gorm:"type:uuid" json:"display_generic_number_id"`
	DisplayGenericNumber   *ResidueGenericNumber `gorm:"foreignKey:DisplayGenericNumberID" json:"display_generic_number,omitempty"`

	// Independent mappings into other schemes, not ownership.
	AlternativeGenericNumbers []ResidueGenericNumber `gorm:"many2many:residue_alternative_generic_numbers" json:"alternative_generic_numbers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
