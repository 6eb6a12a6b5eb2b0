package team

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

type Team struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	OwnerID     string    `gorm:"index;not null" json:"ownerId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"createdAt"`

	// Members is populated from team_members rows, never persisted with the team.
	Members []Member `gorm:"-" json:"members"`
}

// Member binds one user to one team. Email and Name are denormalized for
// display, copied from the profile at invite time.
type Member struct {
	ID        string    `gorm:"type:text;primaryKey" json:"-"`
	TeamID    string    `gorm:"uniqueIndex:uq_team_members_team_user;index;not null" json:"teamId"`
	UserID    string    `gorm:"uniqueIndex:uq_team_members_team_user;index;not null" json:"userId"`
	Role      Role      `gorm:"type:text;not null" json:"role"`
	Email     string    `gorm:"not null;default:''" json:"email"`
	Name      string    `gorm:"not null;default:''" json:"name,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"-"`
}

func (Member) TableName() string { return "team_members" }
