package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/pastelaria-api/domain/store"
	"gorm.io/gorm"
)

// Repository provides database operations for products.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new product repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the products visible under mode ordered by name.
func (r *Repository) List(ctx context.Context, mode store.Mode) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Scopes(store.Scope(mode)).Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product visible under mode.
func (r *Repository) FindByID(ctx context.Context, id uint, mode store.Mode) (*Product, error) {
	p, err := store.Find[Product](ctx, r.db, id, mode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

// FindByIDs returns the active products among ids keyed by id.
func (r *Repository) FindByIDs(ctx context.Context, ids []uint) (map[uint]Product, error) {
	out := make(map[uint]Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var products []Product
	if err := r.db.WithContext(ctx).Scopes(store.Scope(store.Active)).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, p *Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update persists an existing active product.
func (r *Repository) Update(ctx context.Context, p *Product) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete soft-deletes an active product.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	ok, err := store.SoftDelete[Product](ctx, r.db, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Restore clears deleted_at on a soft-deleted product.
func (r *Repository) Restore(ctx context.Context, id uint) error {
	ok, err := store.Restore[Product](ctx, r.db, id)
	if err != nil {
		return fmt.Errorf("failed to restore product: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
