package project

import "time"

type Project struct {
	ID          string
	Name        string
	Description *string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	TaskCount int
}
