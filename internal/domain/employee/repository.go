package employee

import "context"

type EmployeeRepository interface {
	Upsert(ctx context.Context, e Employee) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Delete(ctx context.Context, id string) error
}

type IncrementRepository interface {
	Create(ctx context.Context, inc SalaryIncrement) (SalaryIncrement, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SalaryIncrement, error)
}
