package producttype

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/pastelaria-api/domain/store"
	"gorm.io/gorm"
)

// Repository provides database operations for product types.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new product type repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the product types visible under mode ordered by name.
func (r *Repository) List(ctx context.Context, mode store.Mode) ([]ProductType, error) {
	var types []ProductType
	if err := r.db.WithContext(ctx).Scopes(store.Scope(mode)).Order("name ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list product types: %w", err)
	}
	return types, nil
}

// FindByID retrieves a product type visible under mode.
func (r *Repository) FindByID(ctx context.Context, id uint, mode store.Mode) (*ProductType, error) {
	pt, err := store.Find[ProductType](ctx, r.db, id, mode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product type: %w", err)
	}
	return pt, nil
}

// Exists reports whether an active product type with id exists.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := r.FindByID(ctx, id, store.Active)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Create inserts a new product type.
func (r *Repository) Create(ctx context.Context, pt *ProductType) error {
	if err := r.db.WithContext(ctx).Create(pt).Error; err != nil {
		return fmt.Errorf("failed to create product type: %w", err)
	}
	return nil
}

// Update persists an existing active product type.
func (r *Repository) Update(ctx context.Context, pt *ProductType) error {
	if err := r.db.WithContext(ctx).Save(pt).Error; err != nil {
		return fmt.Errorf("failed to update product type: %w", err)
	}
	return nil
}

// Delete soft-deletes an active product type.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	ok, err := store.SoftDelete[ProductType](ctx, r.db, id)
	if err != nil {
		return fmt.Errorf("failed to delete product type: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Restore clears deleted_at on a soft-deleted product type.
func (r *Repository) Restore(ctx context.Context, id uint) error {
	ok, err := store.Restore[ProductType](ctx, r.db, id)
	if err != nil {
		return fmt.Errorf("failed to restore product type: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
