package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. Cancelled appointments do not block the slot.
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment books an employee for a customer over [StartTime, EndTime).
// EmployeeID references an employee object in the content backend, so it is
// an opaque string here rather than a foreign key.
type Appointment struct {
	ID         uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	CustomerID uuid.UUID      `json:"customerId" gorm:"type:char(36);not null;index"`
	EmployeeID string         `json:"employeeId" gorm:"size:64;not null;index:idx_employee_window"`
	Title      string         `json:"title" gorm:"size:255;not null"`
	Notes      string         `json:"notes" gorm:"type:text"`
	StartTime  time.Time      `json:"startTime" gorm:"not null;index:idx_employee_window"`
	EndTime    time.Time      `json:"endTime" gorm:"not null"`
	Status     string         `json:"status" gorm:"size:50;default:'scheduled';index"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Overlaps reports whether the appointment's half-open interval intersects
// [start, end). Back-to-back appointments do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime.After(start)
}
