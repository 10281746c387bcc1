package organization

import "context"

type OrganizationRepository interface {
	Create(ctx context.Context, o Organization) (Organization, error)
	GetByID(ctx context.Context, id string) (Organization, error)
	List(ctx context.Context) ([]Organization, error)
	Delete(ctx context.Context, id string) error
}
