package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses and priorities.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task is a work item, optionally tied to a customer.
type Task struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Status      string         `json:"status" gorm:"size:50;default:'todo';index"`
	Priority    string         `json:"priority" gorm:"size:50;default:'medium'"`
	DueDate     *time.Time     `json:"dueDate,omitempty"`
	AssigneeID  string         `json:"assigneeId" gorm:"size:64;index"`
	CustomerID  *uuid.UUID     `json:"customerId,omitempty" gorm:"type:char(36);index"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
