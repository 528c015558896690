package producttype

import (
	"context"
	"fmt"

	"github.com/example/pastelaria-api/domain/producttype"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/example/pastelaria-api/domain/validation"
	"github.com/example/pastelaria-api/modules/cache"
)

const (
	keyList   = "product-type:list"
	keyPrefix = "product-type:*"
)

func keyByID(id uint) string {
	return fmt.Sprintf("product-type:%d", id)
}

// Service implements the product type use cases. Active reads go through the cache.
type Service struct {
	repo   *producttype.Repository
	loader *cache.Loader
}

// NewService creates a new product type service.
func NewService(repo *producttype.Repository, loader *cache.Loader) *Service {
	if loader == nil {
		loader = cache.NewLoader(nil)
	}
	return &Service{repo: repo, loader: loader}
}

// List returns the product types visible under mode.
func (s *Service) List(ctx context.Context, mode store.Mode) ([]producttype.Response, error) {
	if mode != store.Active {
		return s.list(ctx, mode)
	}
	return cache.Fetch(ctx, s.loader, keyList, func(ctx context.Context) ([]producttype.Response, error) {
		return s.list(ctx, store.Active)
	})
}

func (s *Service) list(ctx context.Context, mode store.Mode) ([]producttype.Response, error) {
	types, err := s.repo.List(ctx, mode)
	if err != nil {
		return nil, err
	}
	out := make([]producttype.Response, 0, len(types))
	for i := range types {
		out = append(out, producttype.ToResponse(&types[i]))
	}
	return out, nil
}

// Get returns an active product type.
func (s *Service) Get(ctx context.Context, id uint) (producttype.Response, error) {
	return cache.Fetch(ctx, s.loader, keyByID(id), func(ctx context.Context) (producttype.Response, error) {
		pt, err := s.repo.FindByID(ctx, id, store.Active)
		if err != nil {
			return producttype.Response{}, err
		}
		return producttype.ToResponse(pt), nil
	})
}

// Exists reports whether an active product type with id exists.
func (s *Service) Exists(ctx context.Context, id uint) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Create validates req and stores a new product type.
func (s *Service) Create(ctx context.Context, req producttype.CreateRequest) (producttype.Response, error) {
	if errs := validation.Struct(req); errs.Any() {
		return producttype.Response{}, errs
	}

	pt := req.Entity()
	if err := s.repo.Create(ctx, pt); err != nil {
		return producttype.Response{}, err
	}
	s.loader.Invalidate(ctx, keyPrefix)
	return producttype.ToResponse(pt), nil
}

// Update merges the supplied fields into an active product type.
func (s *Service) Update(ctx context.Context, id uint, req producttype.UpdateRequest) (producttype.Response, error) {
	pt, err := s.repo.FindByID(ctx, id, store.Active)
	if err != nil {
		return producttype.Response{}, err
	}
	if errs := validation.Struct(req); errs.Any() {
		return producttype.Response{}, errs
	}

	req.Apply(pt)
	if err := s.repo.Update(ctx, pt); err != nil {
		return producttype.Response{}, err
	}
	s.loader.Invalidate(ctx, keyPrefix)
	return producttype.ToResponse(pt), nil
}

// Delete soft-deletes an active product type.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.loader.Invalidate(ctx, keyPrefix)
	return nil
}

// Restore brings back a soft-deleted product type.
func (s *Service) Restore(ctx context.Context, id uint) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return err
	}
	s.loader.Invalidate(ctx, keyPrefix)
	return nil
}
