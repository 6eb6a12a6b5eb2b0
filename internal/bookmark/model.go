package bookmark

import (
	"time"

	"github.com/lib/pq"
)

// DefaultCategory is assumed when a bookmark was saved without one.
const DefaultCategory = "personal"

type Bookmark struct {
	ID          string         `gorm:"type:text;primaryKey" json:"id"`
	OwnerID     string         `gorm:"index;not null" json:"ownerId"`
	TeamID      string         `gorm:"index;not null;default:''" json:"teamId,omitempty"`
	Title       string         `gorm:"not null" json:"title"`
	URL         string         `gorm:"not null" json:"url"`
	Description string         `gorm:"type:text;not null;default:''" json:"description,omitempty"`
	Tags        pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"tags"`
	AISummary   string         `gorm:"column:ai_summary;type:text;not null;default:''" json:"aiSummary,omitempty"`
	Favicon     string         `gorm:"not null;default:''" json:"favicon,omitempty"`
	Category    string         `gorm:"not null;default:'personal'" json:"category"`
	Public      bool           `gorm:"not null;default:false" json:"isPublic"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"index;not null;default:now()" json:"updatedAt"`
}

// Category is the ad hoc, user-defined grouping a bookmark may point at by name.
type Category struct {
	ID          string         `gorm:"type:text;primaryKey" json:"id"`
	OwnerID     string         `gorm:"index;not null" json:"ownerId"`
	TeamID      string         `gorm:"not null;default:''" json:"teamId,omitempty"`
	Name        string         `gorm:"not null" json:"name"`
	BookmarkIDs pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"bookmarkIds"`
}
