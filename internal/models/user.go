package models

// UserRole is a decorative administrative role badge.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleManager   UserRole = "manager"
	RoleAssistant UserRole = "assistant"
	RoleClass     UserRole = "class"
)

// UserRoles lists roles in display order.
var UserRoles = []UserRole{RoleAdmin, RoleManager, RoleAssistant, RoleClass}

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAssistant, RoleClass:
		return true
	}
	return false
}

// User is an administrative account listed on the user admin screen.
type User struct {
	ID         int64    `db:"id" json:"id"`
	Name       string   `db:"name" json:"name"`
	Username   string   `db:"username" json:"username"`
	Email      string   `db:"email" json:"email"`
	Role       UserRole `db:"role" json:"role"`
	Department string   `db:"department" json:"department"`
	LastActive string   `db:"last_active" json:"last_active"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
