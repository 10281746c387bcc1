package employee

import "time"

type Employee struct {
	ID             string
	UserID         string
	OrganizationID *string
	Position       *string
	Department     *string
	Phone          *string
	Address        *string
	JoinDate       *time.Time
	Salary         *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO / Join
	Name  string
	Email string
}

// SalaryIncrement records one raise applied to an employee's salary.
type SalaryIncrement struct {
	ID            string
	EmployeeID    string
	Amount        float64
	EffectiveDate time.Time
	Note          *string
	CreatedBy     string
	CreatedAt     time.Time
}
