package organization

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/organization"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/user"
)

type OrganizationService interface {
	Create(ctx context.Context, req organization.CreateRequest) (organization.Response, error)
	Get(ctx context.Context, id string) (organization.Response, error)
	List(ctx context.Context) ([]organization.Response, error)
	Delete(ctx context.Context, id string) error
}

type OrganizationServiceImpl struct {
	organization.OrganizationRepository
}

func NewOrganizationService(repo organization.OrganizationRepository) OrganizationService {
	return &OrganizationServiceImpl{OrganizationRepository: repo}
}

func requireAdmin(ctx context.Context) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return tracking.ErrNoCurrentUser
	}
	if role, _ := claims["role"].(string); role != string(user.RoleAdmin) {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}

// Create implements OrganizationService. Admin only.
func (s *OrganizationServiceImpl) Create(ctx context.Context, req organization.CreateRequest) (organization.Response, error) {
	if err := req.Validate(); err != nil {
		return organization.Response{}, err
	}
	if err := requireAdmin(ctx); err != nil {
		return organization.Response{}, err
	}

	created, err := s.OrganizationRepository.Create(ctx, organization.Organization{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return organization.Response{}, err
	}
	return organization.ToResponse(created), nil
}

// Get implements OrganizationService.
func (s *OrganizationServiceImpl) Get(ctx context.Context, id string) (organization.Response, error) {
	o, err := s.OrganizationRepository.GetByID(ctx, id)
	if err != nil {
		return organization.Response{}, err
	}
	return organization.ToResponse(o), nil
}

// List implements OrganizationService.
func (s *OrganizationServiceImpl) List(ctx context.Context) ([]organization.Response, error) {
	orgs, err := s.OrganizationRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	responses := make([]organization.Response, 0, len(orgs))
	for _, o := range orgs {
		responses = append(responses, organization.ToResponse(o))
	}
	return responses, nil
}

// Delete implements OrganizationService. Admin only.
func (s *OrganizationServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return s.OrganizationRepository.Delete(ctx, id)
}
