package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/attendance"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/user"
)

type AttendanceService interface {
	ClockIn(ctx context.Context) (attendance.LogResponse, error)
	ClockOut(ctx context.Context) (attendance.LogResponse, error)
	StartBreak(ctx context.Context) error
	EndBreak(ctx context.Context) error
	Today(ctx context.Context) (attendance.LogResponse, error)
	List(ctx context.Context, req attendance.ListLogsRequest) ([]attendance.LogResponse, error)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	attendance.BreakRepository
	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
) AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		BreakRepository:      breakRepo,
		now:                  time.Now,
	}
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

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClockIn implements AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context) (attendance.LogResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	now := s.now().UTC()
	log, err := s.AttendanceRepository.Create(ctx, attendance.AttendanceLog{
		UserID:  userID,
		Date:    dateOf(now),
		ClockIn: &now,
		Status:  attendance.StatusPresent,
	})
	if err != nil {
		return attendance.LogResponse{}, err
	}
	return attendance.ToLogResponse(log), nil
}

// ClockOut implements AttendanceService. Work seconds exclude breaks.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.LogResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	now := s.now().UTC()
	log, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, dateOf(now))
	if err != nil {
		if errors.Is(err, attendance.ErrLogNotFound) {
			return attendance.LogResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.LogResponse{}, err
	}
	if !log.Open() {
		return attendance.LogResponse{}, attendance.ErrNotClockedIn
	}

	// Close any break the user forgot to end.
	if open, err := s.BreakRepository.GetOpenByAttendance(ctx, log.ID); err == nil {
		if endErr := s.BreakRepository.End(ctx, open.ID, now); endErr != nil {
			return attendance.LogResponse{}, fmt.Errorf("failed to close open break: %w", endErr)
		}
	} else if !errors.Is(err, attendance.ErrNotOnBreak) {
		return attendance.LogResponse{}, err
	}

	breaks, err := s.BreakRepository.ListByAttendance(ctx, log.ID)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	var breakSeconds int64
	for _, b := range breaks {
		end := now
		if b.EndTime != nil {
			end = *b.EndTime
		}
		breakSeconds += int64(end.Sub(b.StartTime).Seconds())
	}

	workSeconds := int64(now.Sub(*log.ClockIn).Seconds()) - breakSeconds
	if workSeconds < 0 {
		workSeconds = 0
	}

	if err := s.AttendanceRepository.ClockOut(ctx, log.ID, now, workSeconds); err != nil {
		return attendance.LogResponse{}, err
	}

	updated, err := s.AttendanceRepository.GetByID(ctx, log.ID)
	if err != nil {
		return attendance.LogResponse{}, err
	}
	updated.Breaks = breaks
	return attendance.ToLogResponse(updated), nil
}

// StartBreak implements AttendanceService.
func (s *AttendanceServiceImpl) StartBreak(ctx context.Context) error {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	log, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, dateOf(now))
	if err != nil {
		if errors.Is(err, attendance.ErrLogNotFound) {
			return attendance.ErrNotClockedIn
		}
		return err
	}
	if !log.Open() {
		return attendance.ErrNotClockedIn
	}

	if _, err := s.BreakRepository.GetOpenByAttendance(ctx, log.ID); err == nil {
		return attendance.ErrAlreadyOnBreak
	} else if !errors.Is(err, attendance.ErrNotOnBreak) {
		return err
	}

	_, err = s.BreakRepository.Create(ctx, attendance.Break{
		AttendanceID: log.ID,
		StartTime:    now,
	})
	return err
}

// EndBreak implements AttendanceService.
func (s *AttendanceServiceImpl) EndBreak(ctx context.Context) error {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	log, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, dateOf(now))
	if err != nil {
		if errors.Is(err, attendance.ErrLogNotFound) {
			return attendance.ErrNotClockedIn
		}
		return err
	}

	open, err := s.BreakRepository.GetOpenByAttendance(ctx, log.ID)
	if err != nil {
		return err
	}
	return s.BreakRepository.End(ctx, open.ID, now)
}

// Today implements AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.LogResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	log, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, dateOf(s.now().UTC()))
	if err != nil {
		return attendance.LogResponse{}, err
	}

	breaks, err := s.BreakRepository.ListByAttendance(ctx, log.ID)
	if err != nil {
		return attendance.LogResponse{}, err
	}
	log.Breaks = breaks
	return attendance.ToLogResponse(log), nil
}

// List implements AttendanceService. Employees see their own logs;
// admins can query anyone's.
func (s *AttendanceServiceImpl) List(ctx context.Context, req attendance.ListLogsRequest) ([]attendance.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if role != string(user.RoleAdmin) {
		req.UserID = userID
	}

	logs, err := s.AttendanceRepository.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}

	responses := make([]attendance.LogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, attendance.ToLogResponse(log))
	}
	return responses, nil
}
