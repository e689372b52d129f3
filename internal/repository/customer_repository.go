package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crmhub/internal/model"
)

// CustomerFilter narrows customer listings.
type CustomerFilter struct {
	Status string
	Search string // matches first name, last name, email or company
}

// CustomerRepository defines customer persistence operations.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, filter CustomerFilter, page, limit int) ([]model.Customer, int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository builds a GORM-backed repository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Customer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, filter CustomerFilter, page, limit int) ([]model.Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Customer{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR company LIKE ?", like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []model.Customer
	if err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}
