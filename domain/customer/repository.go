package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/pastelaria-api/domain/store"
	"gorm.io/gorm"
)

// Repository provides database operations for customers.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new customer repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the customers visible under mode ordered by name.
func (r *Repository) List(ctx context.Context, mode store.Mode) ([]Customer, error) {
	var customers []Customer
	if err := r.db.WithContext(ctx).Scopes(store.Scope(mode)).Order("name ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// FindByID retrieves a customer visible under mode.
func (r *Repository) FindByID(ctx context.Context, id uint, mode store.Mode) (*Customer, error) {
	c, err := store.Find[Customer](ctx, r.db, id, mode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return c, nil
}

// Create inserts a new customer.
func (r *Repository) Create(ctx context.Context, c *Customer) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Update persists every column of an existing active customer.
func (r *Repository) Update(ctx context.Context, c *Customer) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// Delete soft-deletes an active customer.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	ok, err := store.SoftDelete[Customer](ctx, r.db, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Restore clears deleted_at on a soft-deleted customer.
func (r *Repository) Restore(ctx context.Context, id uint) error {
	ok, err := store.Restore[Customer](ctx, r.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to restore customer: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// EmailTaken reports whether a non-deleted customer other than exceptID uses email.
func (r *Repository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&Customer{}).Scopes(store.Scope(store.Active)).Where("email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check customer email: %w", err)
	}
	return count > 0, nil
}
