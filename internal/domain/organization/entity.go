package organization

import "time"

type Organization struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	EmployeeCount int
}
