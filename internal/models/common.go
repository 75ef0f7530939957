package models

import (
	"time"

	"github.com/google/uuid"
)

// WebResource is an external database or site that records link out to
// (PubChem, PDB, ...). Slug is the natural key used by source files.
type WebResource struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name      string    `gorm:"not null" json:"name"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WebLink is one concrete index into a WebResource, e.g. a PubChem CID.
type WebLink struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Index         string      `gorm:"not null;index:idx_web_links_resource_index,unique" json:"index"`
	WebResourceID uuid.UUID   `gorm:"type:uuid;not null;index:idx_web_links_resource_index,unique" json:"web_resource_id"`
	WebResource   WebResource `gorm:"constraint:OnDelete:CASCADE" json:"web_resource"`
	CreatedAt     time.Time   `json:"created_at"`
}
