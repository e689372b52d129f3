package service

import (
	"context"

	"github.com/google/uuid"

	"crmhub/internal/model"
	"crmhub/internal/repository"
)

// UserService exposes the user directory. Role gating (admin/manager only)
// happens in the authorization guard; the service itself only filters to
// active accounts.
type UserService interface {
	Directory(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Directory(ctx context.Context) ([]model.User, error) {
	return s.repo.ListActive(ctx)
}

// parseUUID is a small shared helper for id path params and token subjects.
func parseUUID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}
