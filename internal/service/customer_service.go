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

// CustomerService handles customer CRUD.
type CustomerService interface {
	Create(ctx context.Context, customer *model.Customer) error
	Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Update(ctx context.Context, id uuid.UUID, update *model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter repository.CustomerFilter, page, limit int) ([]model.Customer, int64, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, customer *model.Customer) error {
	if customer.Status == "" {
		customer.Status = model.CustomerStatusLead
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, update *model.Customer) (*model.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.FirstName = update.FirstName
	customer.LastName = update.LastName
	customer.Email = update.Email
	customer.Phone = update.Phone
	customer.Company = update.Company
	customer.Notes = update.Notes
	if update.Status != "" {
		customer.Status = update.Status
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *customerService) List(ctx context.Context, filter repository.CustomerFilter, page, limit int) ([]model.Customer, int64, error) {
	return s.repo.List(ctx, filter, page, limit)
}
