package employee

import (
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/validator"
)

type UpsertProfileRequest struct {
	UserID         string   `json:"user_id"`
	OrganizationID *string  `json:"organization_id,omitempty"`
	Position       *string  `json:"position,omitempty"`
	Department     *string  `json:"department,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Address        *string  `json:"address,omitempty"`
	JoinDate       *string  `json:"join_date,omitempty"`
	Salary         *float64 `json:"salary,omitempty"`
}

func (r *UpsertProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.JoinDate != nil {
		if _, valid := validator.IsValidDate(*r.JoinDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Salary != nil && *r.Salary < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateIncrementRequest struct {
	EmployeeID    string  `json:"employee_id"`
	Amount        float64 `json:"amount"`
	EffectiveDate string  `json:"effective_date"`
	Note          *string `json:"note,omitempty"`
}

func (r *CreateIncrementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Amount <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be positive",
		})
	}

	if _, valid := validator.IsValidDate(r.EffectiveDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_date",
			Message: "effective_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProfileResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	OrganizationID *string  `json:"organization_id,omitempty"`
	Position       *string  `json:"position,omitempty"`
	Department     *string  `json:"department,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Address        *string  `json:"address,omitempty"`
	JoinDate       *string  `json:"join_date,omitempty"`
	Salary         *float64 `json:"salary,omitempty"`
}

type IncrementResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Amount        float64 `json:"amount"`
	EffectiveDate string  `json:"effective_date"`
	Note          *string `json:"note,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func ToProfileResponse(e Employee) ProfileResponse {
	resp := ProfileResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		Name:           e.Name,
		Email:          e.Email,
		OrganizationID: e.OrganizationID,
		Position:       e.Position,
		Department:     e.Department,
		Phone:          e.Phone,
		Address:        e.Address,
		Salary:         e.Salary,
	}
	if e.JoinDate != nil {
		jd := e.JoinDate.Format("2006-01-02")
		resp.JoinDate = &jd
	}
	return resp
}

func ToIncrementResponse(inc SalaryIncrement) IncrementResponse {
	return IncrementResponse{
		ID:            inc.ID,
		EmployeeID:    inc.EmployeeID,
		Amount:        inc.Amount,
		EffectiveDate: inc.EffectiveDate.Format("2006-01-02"),
		Note:          inc.Note,
		CreatedAt:     inc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
