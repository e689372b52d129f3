package model

import "time"

// Audit actions recorded for traceability.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionLogin  = "login"
	AuditActionLogout = "logout"
)

// AuditLog is an append-only record of a mutating action. The application
// never updates or deletes rows in this table.
type AuditLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Action     string    `json:"action" gorm:"size:50;not null;index"`
	Resource   string    `json:"resource" gorm:"size:100;not null;index"`
	ResourceID string    `json:"resourceId" gorm:"size:64"`
	UserID     string    `json:"userId" gorm:"size:64;index"`
	IPAddress  string    `json:"ipAddress" gorm:"size:64"`
	UserAgent  string    `json:"userAgent" gorm:"size:512"`
	CreatedAt  time.Time `json:"createdAt"`
}
