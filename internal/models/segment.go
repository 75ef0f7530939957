package models

import "github.com/google/uuid"

// ProteinSegment is a named structural region (e.g. a transmembrane
// helix). Fusion insertions split a segment into slug_1/slug_2
// sub-segments that keep the original name and category.
type ProteinSegment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug     string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name     string    `gorm:"not null" json:"name"`
	Category string    `gorm:"not null" json:"category"`
}
