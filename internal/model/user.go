package model

import "time"

const (
	RoleTaskOwner = "TASK-OWNER"
	RoleNonOwner  = "NON-OWNER"
)

// Role is an authorization label attached to users.
type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64"`
}

// User is an account able to own tasks. Password holds a bcrypt hash only.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;size:128;not null"`
	Password  string `gorm:"not null"`
	Email     string
	Roles     []Role `gorm:"many2many:user_roles"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
