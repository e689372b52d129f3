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

// TaskService handles task CRUD.
type TaskService interface {
	Create(ctx context.Context, task *model.Task) error
	Get(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, id uuid.UUID, update *model.Task) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter repository.TaskFilter, page, limit int) ([]model.Task, int64, error)
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Create(ctx context.Context, task *model.Task) error {
	if task.Status == "" {
		task.Status = model.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = model.TaskPriorityMedium
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (s *taskService) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id uuid.UUID, update *model.Task) (*model.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Title = update.Title
	task.Description = update.Description
	task.DueDate = update.DueDate
	task.AssigneeID = update.AssigneeID
	task.CustomerID = update.CustomerID
	if update.Status != "" {
		task.Status = update.Status
	}
	if update.Priority != "" {
		task.Priority = update.Priority
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *taskService) List(ctx context.Context, filter repository.TaskFilter, page, limit int) ([]model.Task, int64, error) {
	return s.repo.List(ctx, filter, page, limit)
}
