package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "crmhub/internal/errors"
	"crmhub/internal/model"
	"crmhub/internal/repository"
)

// ErrInvalidWindow is returned when an appointment does not span a positive
// time range.
var ErrInvalidWindow = errors.New("endTime must be after startTime")

// AppointmentService handles appointment scheduling with conflict detection.
type AppointmentService interface {
	Schedule(ctx context.Context, appt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, update *model.Appointment) (*model.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter repository.AppointmentFilter, page, limit int) ([]model.Appointment, int64, error)
}

type appointmentService struct {
	repo repository.AppointmentRepository
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(repo repository.AppointmentRepository) AppointmentService {
	return &appointmentService{repo: repo}
}

// Schedule books an appointment. The slot check and the insert run in one
// transaction so two concurrent requests cannot both take the same window.
func (s *appointmentService) Schedule(ctx context.Context, appt *model.Appointment) error {
	if !appt.EndTime.After(appt.StartTime) {
		return ErrInvalidWindow
	}
	if appt.Status == "" {
		appt.Status = model.AppointmentStatusScheduled
	}

	if err := s.repo.CreateIfFree(ctx, appt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return apperrors.ErrSchedulingConflict
		}
		return fmt.Errorf("schedule appointment: %w", err)
	}
	return nil
}

func (s *appointmentService) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return appt, nil
}

// Update applies changes to an appointment. Moving the window or the employee
// re-runs the conflict check; cancelled appointments free their slot.
func (s *appointmentService) Update(ctx context.Context, id uuid.UUID, update *model.Appointment) (*model.Appointment, error) {
	appt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	moved := !update.StartTime.Equal(appt.StartTime) ||
		!update.EndTime.Equal(appt.EndTime) ||
		(update.EmployeeID != "" && update.EmployeeID != appt.EmployeeID)

	appt.Title = update.Title
	appt.Notes = update.Notes
	appt.StartTime = update.StartTime
	appt.EndTime = update.EndTime
	if update.EmployeeID != "" {
		appt.EmployeeID = update.EmployeeID
	}
	if update.Status != "" {
		appt.Status = update.Status
	}

	if !appt.EndTime.After(appt.StartTime) {
		return nil, ErrInvalidWindow
	}

	if moved && appt.Status != model.AppointmentStatusCancelled {
		err = s.repo.RescheduleIfFree(ctx, appt)
	} else {
		err = s.repo.Update(ctx, appt)
	}
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.ErrSchedulingConflict
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return appt, nil
}

func (s *appointmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *appointmentService) List(ctx context.Context, filter repository.AppointmentFilter, page, limit int) ([]model.Appointment, int64, error) {
	return s.repo.List(ctx, filter, page, limit)
}
