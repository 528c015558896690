package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/pastelaria-api/domain/store"
	"gorm.io/gorm"
)

// Repository provides database operations for orders and their items.
// Every multi-statement write runs in one transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new order repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// visibleItems preloads every item that was not removed by an edit.
func visibleItems(db *gorm.DB) *gorm.DB {
	return db.Unscoped().Where("state <> ?", ItemRemoved).Order("id ASC")
}

// List returns the orders visible under mode with their items.
func (r *Repository) List(ctx context.Context, mode store.Mode) ([]Order, error) {
	var orders []Order
	err := r.db.WithContext(ctx).
		Scopes(store.Scope(mode)).
		Preload("Items", visibleItems).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// FindByID retrieves an order visible under mode with its items.
func (r *Repository) FindByID(ctx context.Context, id uint, mode store.Mode) (*Order, error) {
	return find(r.db.WithContext(ctx), id, mode)
}

func find(db *gorm.DB, id uint, mode store.Mode) (*Order, error) {
	var o Order
	if err := db.Scopes(store.Scope(mode)).Preload("Items", visibleItems).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &o, nil
}

// Create inserts an order for customerID with one active item per line.
func (r *Repository) Create(ctx context.Context, customerID uint, lines []Line) (*Order, error) {
	o := &Order{CustomerID: customerID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		items := newItems(o.ID, lines)
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		o.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ReplaceLines reconciles the active items of an order with lines and
// returns the reloaded order.
func (r *Repository) ReplaceLines(ctx context.Context, id uint, lines []Line) (*Order, error) {
	var updated *Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := find(tx, id, store.Active)
		if err != nil {
			return err
		}

		plan := Reconcile(o.Items, lines)
		if err := applyPlan(tx, o.ID, plan); err != nil {
			return err
		}
		if !plan.Empty() {
			if err := tx.Model(o).Update("updated_at", time.Now()).Error; err != nil {
				return fmt.Errorf("failed to touch order: %w", err)
			}
		}

		updated, err = find(tx, id, store.Active)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyPlan(tx *gorm.DB, orderID uint, plan Plan) error {
	for _, it := range plan.Update {
		if err := tx.Model(&Item{ID: it.ID}).Update("quantity", it.Quantity).Error; err != nil {
			return fmt.Errorf("failed to update order item: %w", err)
		}
	}

	if len(plan.Remove) > 0 {
		ids := make([]uint, 0, len(plan.Remove))
		for _, it := range plan.Remove {
			ids = append(ids, it.ID)
		}
		err := tx.Model(&Item{}).
			Where("id IN ?", ids).
			Updates(map[string]any{"state": ItemRemoved, "deleted_at": time.Now()}).Error
		if err != nil {
			return fmt.Errorf("failed to remove order items: %w", err)
		}
	}

	if len(plan.Insert) > 0 {
		items := newItems(orderID, plan.Insert)
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to insert order items: %w", err)
		}
	}
	return nil
}

// Delete soft-deletes an active order and moves its active items to ItemDeleted.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := store.SoftDelete[Order](ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		if !ok {
			return ErrNotFound
		}
		err = tx.Model(&Item{}).
			Where("order_id = ? AND state = ?", id, ItemActive).
			Updates(map[string]any{"state": ItemDeleted, "deleted_at": time.Now()}).Error
		if err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		return nil
	})
}

// Restore clears deleted_at on a soft-deleted order and brings back the
// items deleted with it. Items removed by an edit stay removed.
func (r *Repository) Restore(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := store.Restore[Order](ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to restore order: %w", err)
		}
		if !ok {
			return ErrNotFound
		}
		err = tx.Unscoped().Model(&Item{}).
			Where("order_id = ? AND state = ?", id, ItemDeleted).
			Updates(map[string]any{"state": ItemActive, "deleted_at": nil}).Error
		if err != nil {
			return fmt.Errorf("failed to restore order items: %w", err)
		}
		return nil
	})
}

func newItems(orderID uint, lines []Line) []Item {
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, Item{OrderID: orderID, ProductID: l.ProductID, Quantity: l.Quantity, State: ItemActive})
	}
	return items
}
