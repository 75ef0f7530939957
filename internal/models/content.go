package models

import (
	"time"

	"github.com/google/uuid"
)

// Documentation is a rendered help page: YAML metadata plus an HTML body
// read verbatim from the sibling .html file.
type Documentation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"uniqueIndex;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `json:"image"`
	HTML        string    `gorm:"type:text" json:"html"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// News is a dated announcement; the natural key is image+date because
// titles repeat across release notes.
type News struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Image     string    `gorm:"not null;index:idx_news_image_date,unique" json:"image"`
	Date      time.Time `gorm:"type:date;not null;index:idx_news_image_date,unique" json:"date"`
	HTML      string    `gorm:"type:text" json:"html"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page is a static site page keyed by title.
type Page struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title     string    `gorm:"uniqueIndex;not null" json:"title"`
	HTML      string    `gorm:"type:text" json:"html"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
