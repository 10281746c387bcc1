package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/employee"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `e.id, e.user_id, e.organization_id, e.position, e.department, e.phone,
			   e.address, e.join_date, e.salary, e.created_at, e.updated_at, u.name, u.email`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.OrganizationID,
		&e.Position,
		&e.Department,
		&e.Phone,
		&e.Address,
		&e.JoinDate,
		&e.Salary,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.Name,
		&e.Email,
	)
	return e, err
}

// Upsert implements employee.EmployeeRepository. One profile per user;
// a second write updates in place.
func (r *employeeRepositoryImpl) Upsert(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH upserted AS (
			INSERT INTO employees (user_id, organization_id, position, department, phone, address, join_date, salary)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id) DO UPDATE SET
				organization_id = COALESCE(EXCLUDED.organization_id, employees.organization_id),
				position = COALESCE(EXCLUDED.position, employees.position),
				department = COALESCE(EXCLUDED.department, employees.department),
				phone = COALESCE(EXCLUDED.phone, employees.phone),
				address = COALESCE(EXCLUDED.address, employees.address),
				join_date = COALESCE(EXCLUDED.join_date, employees.join_date),
				salary = COALESCE(EXCLUDED.salary, employees.salary),
				updated_at = NOW()
			RETURNING *
		)
		SELECT ` + employeeColumns + `
		FROM upserted e
		JOIN users u ON u.id = e.user_id
	`

	upserted, err := scanEmployee(q.QueryRow(ctx, query,
		e.UserID,
		e.OrganizationID,
		e.Position,
		e.Department,
		e.Phone,
		e.Address,
		e.JoinDate,
		e.Salary,
	))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to upsert employee: %w", err)
	}
	return upserted, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN users u ON u.id = e.user_id
		WHERE e.user_id = $1
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user id: %w", err)
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN users u ON u.id = e.user_id
		WHERE e.id = $1
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN users u ON u.id = e.user_id
		ORDER BY u.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

type incrementRepositoryImpl struct {
	db *database.DB
}

func NewIncrementRepository(db *database.DB) employee.IncrementRepository {
	return &incrementRepositoryImpl{db: db}
}

// Create implements employee.IncrementRepository. The raise is applied
// to the employee's salary in the same transaction.
func (r *incrementRepositoryImpl) Create(ctx context.Context, inc employee.SalaryIncrement) (employee.SalaryIncrement, error) {
	var created employee.SalaryIncrement

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO salary_increments (employee_id, amount, effective_date, note, created_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, employee_id, amount, effective_date, note, created_by, created_at
		`

		err := q.QueryRow(txCtx, query, inc.EmployeeID, inc.Amount, inc.EffectiveDate, inc.Note, inc.CreatedBy).Scan(
			&created.ID,
			&created.EmployeeID,
			&created.Amount,
			&created.EffectiveDate,
			&created.Note,
			&created.CreatedBy,
			&created.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create salary increment: %w", err)
		}

		tag, err := q.Exec(txCtx, `
			UPDATE employees SET salary = COALESCE(salary, 0) + $1, updated_at = NOW() WHERE id = $2
		`, inc.Amount, inc.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to apply salary increment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return employee.ErrEmployeeNotFound
		}
		return nil
	})
	if err != nil {
		return employee.SalaryIncrement{}, err
	}
	return created, nil
}

// ListByEmployee implements employee.IncrementRepository.
func (r *incrementRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]employee.SalaryIncrement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, amount, effective_date, note, created_by, created_at
		FROM salary_increments
		WHERE employee_id = $1
		ORDER BY effective_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary increments: %w", err)
	}
	defer rows.Close()

	var increments []employee.SalaryIncrement
	for rows.Next() {
		var inc employee.SalaryIncrement
		err := rows.Scan(
			&inc.ID,
			&inc.EmployeeID,
			&inc.Amount,
			&inc.EffectiveDate,
			&inc.Note,
			&inc.CreatedBy,
			&inc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary increment: %w", err)
		}
		increments = append(increments, inc)
	}
	return increments, rows.Err()
}
