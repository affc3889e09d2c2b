package models

import "time"

// Base holds the columns every table carries.
type Base struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2025-01-02T15:30:00Z"`
}

// Meta gives generic code access to the shared columns.
func (b *Base) Meta() *Base { return b }

// Record is implemented by every persisted model through the embedded Base.
type Record interface {
	Meta() *Base
}

// Pointer constrains a type parameter to *T where *T is a Record.
type Pointer[T any] interface {
	*T
	Record
}

// Role is the role tag carried by a profile.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleLecturer Role = "lecturer"
	RoleStudent  Role = "student"
)

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleLecturer, RoleStudent}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Term represents a semester term
type Term string

const (
	TermFirst  Term = "first"
	TermSecond Term = "second"
	TermSummer Term = "summer"
)
