package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crmhub/internal/model"
)

// ErrSlotTaken is returned by CreateIfFree and RescheduleIfFree when the
// employee already has a non-cancelled appointment overlapping the window.
var ErrSlotTaken = errors.New("appointment slot already taken")

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	EmployeeID string
	CustomerID uuid.UUID
	Status     string
	From       time.Time
	To         time.Time
}

// AppointmentRepository defines appointment persistence operations.
type AppointmentRepository interface {
	// CreateIfFree inserts the appointment unless the employee has an
	// overlapping non-cancelled appointment. The conflict read and the
	// insert run inside one transaction with the candidate rows locked.
	CreateIfFree(ctx context.Context, appt *model.Appointment) error
	// RescheduleIfFree saves the appointment with the same conflict guard,
	// ignoring the appointment's own row in the overlap check.
	RescheduleIfFree(ctx context.Context, appt *model.Appointment) error
	Update(ctx context.Context, appt *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter, page, limit int) ([]model.Appointment, int64, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository builds a GORM-backed repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// overlapQuery selects the employee's non-cancelled appointments intersecting
// the half-open window [start, end). Exactly adjacent appointments do not match.
func overlapQuery(tx *gorm.DB, employeeID string, start, end time.Time) *gorm.DB {
	return tx.Model(&model.Appointment{}).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", model.AppointmentStatusCancelled).
		Where("start_time < ? AND end_time > ?", end, start)
}

func (r *appointmentRepository) CreateIfFree(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := overlapQuery(tx.Clauses(clause.Locking{Strength: "UPDATE"}), appt.EmployeeID, appt.StartTime, appt.EndTime).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}
		return tx.Create(appt).Error
	})
}

func (r *appointmentRepository) RescheduleIfFree(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := overlapQuery(tx.Clauses(clause.Locking{Strength: "UPDATE"}), appt.EmployeeID, appt.StartTime, appt.EndTime).
			Where("id <> ?", appt.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotTaken
		}
		return tx.Save(appt).Error
	})
}

func (r *appointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appt model.Appointment
	if err := r.db.WithContext(ctx).Preload("Customer").Where("id = ?", id).First(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter, page, limit int) ([]model.Appointment, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Appointment{})
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.CustomerID != uuid.Nil {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		q = q.Where("end_time > ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("start_time < ?", filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appts []model.Appointment
	if err := q.Preload("Customer").Order("start_time").Offset((page - 1) * limit).Limit(limit).Find(&appts).Error; err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}
