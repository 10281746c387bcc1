package organization

import (
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Response struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	EmployeeCount int     `json:"employee_count"`
	CreatedAt     string  `json:"created_at"`
}

func ToResponse(o Organization) Response {
	return Response{
		ID:            o.ID,
		Name:          o.Name,
		Description:   o.Description,
		EmployeeCount: o.EmployeeCount,
		CreatedAt:     o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
