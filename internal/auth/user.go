package auth

import "time"

// User holds the credential record. Profile data lives in identity.Profile.
type User struct {
	ID           string    `gorm:"type:text;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}
