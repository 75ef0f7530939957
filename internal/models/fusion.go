package models

import (
	"time"

	"github.com/google/uuid"
)

// ProteinFusion is a foreign protein inserted into constructs (T4
// lysozyme, BRIL, ...), keyed by name.
type ProteinFusion struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Sequence string    `gorm:"type:text;not null" json:"sequence"`
}

// ProteinFusionProtein places a fusion into a construct between two
// boundary segments.
type ProteinFusionProtein struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProteinID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"protein_id"`
	Protein         Protein        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ProteinFusionID uuid.UUID      `gorm:"type:uuid;not null" json:"protein_fusion_id"`
	ProteinFusion   ProteinFusion  `json:"protein_fusion"`
	SegmentBeforeID uuid.UUID      `gorm:"type:uuid;not null" json:"segment_before_id"`
	SegmentBefore   ProteinSegment `gorm:"foreignKey:SegmentBeforeID" json:"segment_before"`
	SegmentAfterID  uuid.UUID      `gorm:"type:uuid;not null" json:"segment_after_id"`
	SegmentAfter    ProteinSegment `gorm:"foreignKey:SegmentAfterID" json:"segment_after"`
	CreatedAt       time.Time      `json:"created_at"`
}
