package models

import "time"

// Role is the closed set of user roles. Everything that is not staff is a
// developer, including the value a fresh signup gets.
type Role string

const (
	RoleDeveloper Role = "developer"
	RoleStaff     Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RoleStaff:
		return true
	}
	return false
}

const DefaultColor = "#2563eb"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IDNumber  string    `gorm:"uniqueIndex;size:32;not null" json:"id_number"`
	FullName  string    `gorm:"size:191;not null" json:"full_name"`
	Email     *string   `gorm:"size:191" json:"email"`
	Phone     *string   `gorm:"size:32" json:"phone"`
	Role      Role      `gorm:"size:32;not null" json:"role"`
	Color     string    `gorm:"size:16;not null" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
