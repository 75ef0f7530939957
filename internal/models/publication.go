package models

import (
	"time"

	"github.com/google/uuid"
)

type PublicationJournal struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name string    `gorm:"not null" json:"name"`
}

// Publication is a literature reference linked out through a WebLink
// (typically a DOI or PubMed index).
type Publication struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title     string             `gorm:"not null;index" json:"title"`
	Authors   string             `gorm:"type:text;not null" json:"authors"`
	Year      int                `gorm:"not null" json:"year"`
	Reference string             `gorm:"type:text" json:"reference"`
	JournalID uuid.UUID          `gorm:"type:uuid;not null" json:"journal_id"`
	Journal   PublicationJournal `json:"journal"`
	WebLinkID uuid.UUID          `gorm:"type:uuid;not null" json:"web_link_id"`
	WebLink   WebLink            `json:"web_link"`
	CreatedAt time.Time          `json:"created_at"`
}
