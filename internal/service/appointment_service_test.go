package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "crmhub/internal/errors"
	"crmhub/internal/model"
	"crmhub/internal/repository"
)

// MockAppointmentRepository is a mock implementation of AppointmentRepository.
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) CreateIfFree(ctx context.Context, appt *model.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepository) RescheduleIfFree(ctx context.Context, appt *model.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context, filter repository.AppointmentFilter, page, limit int) ([]model.Appointment, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Appointment), args.Get(1).(int64), args.Error(2)
}

func window(hour int) (time.Time, time.Time) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	return day.Add(time.Duration(hour) * time.Hour), day.Add(time.Duration(hour+1) * time.Hour)
}

func TestAppointmentService_Schedule(t *testing.T) {
	start, end := window(10)

	tests := []struct {
		name          string
		appt          *model.Appointment
		repoErr       error
		expectedError error
	}{
		{
			name: "successful booking",
			appt: &model.Appointment{EmployeeID: "emp-1", StartTime: start, EndTime: end},
		},
		{
			name:          "slot taken maps to scheduling conflict",
			appt:          &model.Appointment{EmployeeID: "emp-1", StartTime: start, EndTime: end},
			repoErr:       repository.ErrSlotTaken,
			expectedError: apperrors.ErrSchedulingConflict,
		},
		{
			name:          "inverted window rejected",
			appt:          &model.Appointment{EmployeeID: "emp-1", StartTime: end, EndTime: start},
			expectedError: ErrInvalidWindow,
		},
		{
			name:          "zero-length window rejected",
			appt:          &model.Appointment{EmployeeID: "emp-1", StartTime: start, EndTime: start},
			expectedError: ErrInvalidWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAppointmentRepository)
			svc := NewAppointmentService(repo)
			repo.On("CreateIfFree", mock.Anything, tt.appt).Return(tt.repoErr)

			err := svc.Schedule(context.Background(), tt.appt)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.AppointmentStatusScheduled, tt.appt.Status)
			}
			if tt.expectedError == ErrInvalidWindow {
				repo.AssertNotCalled(t, "CreateIfFree", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAppointmentService_Update_MovedWindowRechecksConflicts(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := NewAppointmentService(repo)

	id := uuid.New()
	start, end := window(10)
	existing := &model.Appointment{
		ID:         id,
		EmployeeID: "emp-1",
		StartTime:  start,
		EndTime:    end,
		Status:     model.AppointmentStatusScheduled,
	}
	repo.On("FindByID", mock.Anything, id).Return(existing, nil)
	repo.On("RescheduleIfFree", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(nil)

	newStart, newEnd := window(14)
	got, err := svc.Update(context.Background(), id, &model.Appointment{StartTime: newStart, EndTime: newEnd})
	assert.NoError(t, err)
	assert.Equal(t, newStart, got.StartTime)
	repo.AssertCalled(t, "RescheduleIfFree", mock.Anything, mock.AnythingOfType("*model.Appointment"))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAppointmentService_Update_UnmovedSkipsConflictCheck(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := NewAppointmentService(repo)

	id := uuid.New()
	start, end := window(10)
	existing := &model.Appointment{
		ID:         id,
		EmployeeID: "emp-1",
		StartTime:  start,
		EndTime:    end,
		Status:     model.AppointmentStatusScheduled,
	}
	repo.On("FindByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(nil)

	// Same window and employee, only the title changes.
	got, err := svc.Update(context.Background(), id, &model.Appointment{
		Title:     "Renamed",
		StartTime: start,
		EndTime:   end,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	repo.AssertNotCalled(t, "RescheduleIfFree", mock.Anything, mock.Anything)
}

func TestAppointmentService_Update_CancellingFreesSlot(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := NewAppointmentService(repo)

	id := uuid.New()
	start, end := window(10)
	existing := &model.Appointment{
		ID:         id,
		EmployeeID: "emp-1",
		StartTime:  start,
		EndTime:    end,
		Status:     model.AppointmentStatusScheduled,
	}
	repo.On("FindByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(nil)

	// A cancelled appointment never competes for the slot, even when moved.
	newStart, newEnd := window(14)
	got, err := svc.Update(context.Background(), id, &model.Appointment{
		StartTime: newStart,
		EndTime:   newEnd,
		Status:    model.AppointmentStatusCancelled,
	})
	assert.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, got.Status)
	repo.AssertNotCalled(t, "RescheduleIfFree", mock.Anything, mock.Anything)
}

func TestAppointmentService_Update_ConflictOnMove(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := NewAppointmentService(repo)

	id := uuid.New()
	start, end := window(10)
	existing := &model.Appointment{
		ID:         id,
		EmployeeID: "emp-1",
		StartTime:  start,
		EndTime:    end,
		Status:     model.AppointmentStatusScheduled,
	}
	repo.On("FindByID", mock.Anything, id).Return(existing, nil)
	repo.On("RescheduleIfFree", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(repository.ErrSlotTaken)

	newStart, newEnd := window(14)
	_, err := svc.Update(context.Background(), id, &model.Appointment{StartTime: newStart, EndTime: newEnd})
	assert.ErrorIs(t, err, apperrors.ErrSchedulingConflict)
}

func TestAppointmentService_GetAndDelete_NotFound(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := NewAppointmentService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Delete", mock.Anything, id).Return(gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
