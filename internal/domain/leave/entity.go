package leave

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Type string

const (
	TypeAnnual Type = "annual"
	TypeSick   Type = "sick"
	TypeUnpaid Type = "unpaid"
)

type Request struct {
	ID           string
	UserID       string
	Type         Type
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
	Status       Status
	DecidedBy    *string
	DecisionNote *string
	DecidedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	UserName  string
	UserEmail string
}

// Pending reports whether the request still awaits a decision.
func (r *Request) Pending() bool {
	return r.Status == StatusPending
}
