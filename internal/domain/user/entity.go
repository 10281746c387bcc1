package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Can manage employees, approve leave, view all reports
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID              string
	Email           string
	Name            string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	AvatarURL       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if user can approve leave requests
func (u *User) CanApprove() bool {
	return u.IsAdmin()
}
