package identity

import "time"

// Profile is the display document attached to a user. It is created once at
// sign-up and patched on each sign-in (last_login) and on profile updates.
// A user without a profile is valid; lookups return nil rather than an error.
type Profile struct {
	UserID      string    `gorm:"type:text;primaryKey" json:"userId"`
	Email       string    `gorm:"not null" json:"email"`
	DisplayName string    `gorm:"not null;default:''" json:"displayName,omitempty"`
	PhotoURL    string    `gorm:"not null;default:''" json:"photoURL,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"createdAt"`
	LastLogin   time.Time `gorm:"not null;default:now()" json:"lastLogin"`
}
