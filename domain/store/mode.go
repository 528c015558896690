package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Mode selects which rows a query sees with respect to soft deletion.
type Mode int

const (
	// Active matches rows with deleted_at IS NULL.
	Active Mode = iota
	// TrashedOnly matches rows with deleted_at IS NOT NULL.
	TrashedOnly
	// All matches every row.
	All
)

// ErrInvalidMode is returned by ParseMode for an unknown value.
var ErrInvalidMode = errors.New("invalid trashed mode")

// ParseMode maps the ?trashed= query value to a Mode.
// "" is Active, "with" is All and "only" is TrashedOnly.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "":
		return Active, nil
	case "with":
		return All, nil
	case "only":
		return TrashedOnly, nil
	default:
		return Active, ErrInvalidMode
	}
}

func (m Mode) String() string {
	switch m {
	case TrashedOnly:
		return "only"
	case All:
		return "with"
	default:
		return "active"
	}
}

// Scope replaces gorm's implicit soft-delete clause with the explicit filter for mode.
func Scope(mode Mode) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Unscoped()
		switch mode {
		case TrashedOnly:
			return db.Where("deleted_at IS NOT NULL")
		case All:
			return db
		default:
			return db.Where("deleted_at IS NULL")
		}
	}
}

// Find loads the row of type T with the given id visible under mode.
// It returns gorm.ErrRecordNotFound when no such row exists.
func Find[T any](ctx context.Context, db *gorm.DB, id uint, mode Mode) (*T, error) {
	var row T
	if err := db.WithContext(ctx).Scopes(Scope(mode)).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// SoftDelete stamps deleted_at on an active row of type T.
// The boolean is false when no active row with that id exists.
func SoftDelete[T any](ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	result := db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Restore clears deleted_at on a soft-deleted row of type T.
// The boolean is false unless the row exists and is currently soft-deleted.
func Restore[T any](ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	result := db.WithContext(ctx).
		Model(new(T)).
		Scopes(Scope(TrashedOnly)).
		Where("id = ?", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
