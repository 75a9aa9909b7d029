package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleStudent    = "student"
	RoleSuperAdmin = "super-admin"
)

// User is the login identity. Role decides which detail row exists
// (StudentDetails for students, AdminDetails for admins and super-admins).
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Email          string `gorm:"size:128;not null;uniqueIndex"`
	HashedPassword []byte `gorm:"not null"`
	Role           string `gorm:"size:16;not null;index"`

	AdminDetails   *AdminDetails   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	StudentDetails *StudentDetails `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Permissions    []Permission    `gorm:"many2many:users_to_permissions;"`
}

// PermissionNames flattens the loaded permission rows into the claim list.
func (u *User) PermissionNames() []string {
	names := make([]string, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		names = append(names, p.Name)
	}
	return names
}

// AdminDetails holds the name fields for admin and super-admin users.
type AdminDetails struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex;not null"`
	FirstName string `gorm:"size:128;not null"`
	LastName  string `gorm:"size:128;not null"`
}
