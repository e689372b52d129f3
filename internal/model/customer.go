package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer statuses.
const (
	CustomerStatusLead     = "lead"
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
)

// Customer is a CRM customer record.
type Customer struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName string         `json:"firstName" gorm:"size:100;not null"`
	LastName  string         `json:"lastName" gorm:"size:100;not null"`
	Email     string         `json:"email" gorm:"size:255;index"`
	Phone     string         `json:"phone" gorm:"size:50"`
	Company   string         `json:"company" gorm:"size:255"`
	Status    string         `json:"status" gorm:"size:50;default:'lead';index"`
	Notes     string         `json:"notes" gorm:"type:text"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:CustomerID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
