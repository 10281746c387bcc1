package employee

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/employee"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/user"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/storage"
)

type EmployeeService interface {
	MyProfile(ctx context.Context) (employee.ProfileResponse, error)
	UpsertProfile(ctx context.Context, req employee.UpsertProfileRequest) (employee.ProfileResponse, error)
	UploadAvatar(ctx context.Context, contentType string, data io.Reader) (string, error)
	List(ctx context.Context) ([]employee.ProfileResponse, error)
	Delete(ctx context.Context, id string) error
	AddIncrement(ctx context.Context, req employee.CreateIncrementRequest) (employee.IncrementResponse, error)
	Increments(ctx context.Context, employeeID string) ([]employee.IncrementResponse, error)
}

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	employee.IncrementRepository
	users user.UserRepository
	files storage.FileStorage
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	incrementRepo employee.IncrementRepository,
	userRepo user.UserRepository,
	files storage.FileStorage,
) EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository:  employeeRepo,
		IncrementRepository: incrementRepo,
		users:               userRepo,
		files:               files,
	}
}

var avatarExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

func claimsFromContext(ctx context.Context) (userID, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", tracking.ErrNoCurrentUser
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", tracking.ErrNoCurrentUser
	}
	role, _ = claims["role"].(string)
	return userID, role, nil
}

// MyProfile implements EmployeeService.
func (s *EmployeeServiceImpl) MyProfile(ctx context.Context) (employee.ProfileResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	e, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return employee.ToProfileResponse(e), nil
}

// UpsertProfile implements EmployeeService. Users edit their own
// profile; admins can edit anyone's.
func (s *EmployeeServiceImpl) UpsertProfile(ctx context.Context, req employee.UpsertProfileRequest) (employee.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}

	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	if req.UserID != userID && role != string(user.RoleAdmin) {
		return employee.ProfileResponse{}, user.ErrInsufficientPermissions
	}

	// Salary changes go through increments, never profile edits.
	if req.Salary != nil && role != string(user.RoleAdmin) {
		return employee.ProfileResponse{}, user.ErrAdminPrivilegeRequired
	}

	e := employee.Employee{
		UserID:         req.UserID,
		OrganizationID: req.OrganizationID,
		Position:       req.Position,
		Department:     req.Department,
		Phone:          req.Phone,
		Address:        req.Address,
		Salary:         req.Salary,
	}
	if req.JoinDate != nil {
		jd, err := time.Parse("2006-01-02", *req.JoinDate)
		if err != nil {
			return employee.ProfileResponse{}, fmt.Errorf("failed to parse join date: %w", err)
		}
		e.JoinDate = &jd
	}

	upserted, err := s.EmployeeRepository.Upsert(ctx, e)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return employee.ToProfileResponse(upserted), nil
}

// UploadAvatar implements EmployeeService. The image replaces whatever
// was there before; old files are left for storage cleanup.
func (s *EmployeeServiceImpl) UploadAvatar(ctx context.Context, contentType string, data io.Reader) (string, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}

	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", employee.ErrUnsupportedImageType
	}

	path := fmt.Sprintf("avatars/%s.%s", userID, ext)
	url, err := s.files.Upload(ctx, data, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.users.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}

// List implements EmployeeService. Admin only.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.ProfileResponse, error) {
	_, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if role != string(user.RoleAdmin) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.ProfileResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToProfileResponse(e))
	}
	return responses, nil
}

// Delete implements EmployeeService. Admin only.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	_, role, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}
	if role != string(user.RoleAdmin) {
		return user.ErrAdminPrivilegeRequired
	}
	return s.EmployeeRepository.Delete(ctx, id)
}

// AddIncrement implements EmployeeService. Admin only.
func (s *EmployeeServiceImpl) AddIncrement(ctx context.Context, req employee.CreateIncrementRequest) (employee.IncrementResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.IncrementResponse{}, err
	}

	adminID, role, err := claimsFromContext(ctx)
	if err != nil {
		return employee.IncrementResponse{}, err
	}
	if role != string(user.RoleAdmin) {
		return employee.IncrementResponse{}, user.ErrAdminPrivilegeRequired
	}

	effective, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return employee.IncrementResponse{}, fmt.Errorf("failed to parse effective date: %w", err)
	}

	created, err := s.IncrementRepository.Create(ctx, employee.SalaryIncrement{
		EmployeeID:    req.EmployeeID,
		Amount:        req.Amount,
		EffectiveDate: effective,
		Note:          req.Note,
		CreatedBy:     adminID,
	})
	if err != nil {
		return employee.IncrementResponse{}, err
	}
	return employee.ToIncrementResponse(created), nil
}

// Increments implements EmployeeService.
func (s *EmployeeServiceImpl) Increments(ctx context.Context, employeeID string) ([]employee.IncrementResponse, error) {
	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if role != string(user.RoleAdmin) {
		own, err := s.EmployeeRepository.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if own.ID != employeeID {
			return nil, user.ErrInsufficientPermissions
		}
	}

	increments, err := s.IncrementRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary increments: %w", err)
	}

	responses := make([]employee.IncrementResponse, 0, len(increments))
	for _, inc := range increments {
		responses = append(responses, employee.ToIncrementResponse(inc))
	}
	return responses, nil
}
