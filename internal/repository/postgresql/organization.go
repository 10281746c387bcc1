package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/organization"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/database"
)

type organizationRepositoryImpl struct {
	db *database.DB
}

func NewOrganizationRepository(db *database.DB) organization.OrganizationRepository {
	return &organizationRepositoryImpl{db: db}
}

// Create implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) Create(ctx context.Context, o organization.Organization) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO organizations (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at, updated_at
	`

	var created organization.Organization
	err := q.QueryRow(ctx, query, o.Name, o.Description).Scan(
		&created.ID,
		&created.Name,
		&created.Description,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return organization.Organization{}, organization.ErrNameTaken
		}
		return organization.Organization{}, fmt.Errorf("failed to create organization: %w", err)
	}
	return created, nil
}

// GetByID implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT o.id, o.name, o.description, o.created_at, o.updated_at,
			   COUNT(e.id) AS employee_count
		FROM organizations o
		LEFT JOIN employees e ON e.organization_id = o.id
		WHERE o.id = $1
		GROUP BY o.id
	`

	var o organization.Organization
	err := q.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.Name,
		&o.Description,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.EmployeeCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrOrganizationNotFound
		}
		return organization.Organization{}, fmt.Errorf("failed to get organization: %w", err)
	}
	return o, nil
}

// List implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) List(ctx context.Context) ([]organization.Organization, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT o.id, o.name, o.description, o.created_at, o.updated_at,
			   COUNT(e.id) AS employee_count
		FROM organizations o
		LEFT JOIN employees e ON e.organization_id = o.id
		GROUP BY o.id
		ORDER BY o.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []organization.Organization
	for rows.Next() {
		var o organization.Organization
		err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.Description,
			&o.CreatedAt,
			&o.UpdatedAt,
			&o.EmployeeCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

// Delete implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrOrganizationNotFound
	}
	return nil
}
