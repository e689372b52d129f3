package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Admin and manager may browse the user directory.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User is a credential principal. Email is stored lowercased so uniqueness is
// case-insensitive.
type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string         `json:"firstName" gorm:"size:100"`
	LastName     string         `json:"lastName" gorm:"size:100"`
	Role         string         `json:"role" gorm:"size:50;default:'staff';index"`
	IsActive     bool           `json:"isActive" gorm:"default:true;index"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
