package domain

import "time"

type Role string

const (
	RoleFarmer   Role = "farmer"
	RoleProvider Role = "resource_provider"
)

func (r Role) Valid() bool { return r == RoleFarmer || r == RoleProvider }

// User is the public profile. Role is fixed at registration.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Role      Role      `gorm:"index;size:32;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credential backs password sign-in; it never leaves the service layer.
type Credential struct {
	UserID       string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
