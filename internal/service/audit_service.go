package service

import (
	"context"
	"log"
	"time"

	"crmhub/internal/model"
	"crmhub/internal/repository"
)

// AuditService records mutating actions. Writes are asynchronous so audit
// persistence never adds latency to, or fails, the audited request.
type AuditService interface {
	Record(entry model.AuditLog)
	List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates a new audit service.
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Record(entry model.AuditLog) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.Create(ctx, &entry); err != nil {
			log.Printf("audit log write failed: %v", err)
		}
	}()
}

func (s *auditService) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return s.repo.List(ctx, page, limit)
}
