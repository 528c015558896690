package product

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/example/pastelaria-api/domain/image"
	"github.com/example/pastelaria-api/domain/product"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/example/pastelaria-api/domain/validation"
	"github.com/example/pastelaria-api/modules/cache"
)

const (
	keyList   = "product:list"
	keyPrefix = "product:*"
)

func keyByID(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// TypeChecker reports whether an active product type exists.
type TypeChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Service implements the product use cases: validation, photo ingestion and cached reads.
type Service struct {
	repo   *product.Repository
	types  TypeChecker
	images *image.Ingester
	loader *cache.Loader
}

// NewService creates a new product service.
func NewService(repo *product.Repository, types TypeChecker, images *image.Ingester, loader *cache.Loader) *Service {
	if loader == nil {
		loader = cache.NewLoader(nil)
	}
	return &Service{repo: repo, types: types, images: images, loader: loader}
}

// List returns the products visible under mode.
func (s *Service) List(ctx context.Context, mode store.Mode) ([]product.Response, error) {
	if mode != store.Active {
		return s.list(ctx, mode)
	}
	return cache.Fetch(ctx, s.loader, keyList, func(ctx context.Context) ([]product.Response, error) {
		return s.list(ctx, store.Active)
	})
}

func (s *Service) list(ctx context.Context, mode store.Mode) ([]product.Response, error) {
	products, err := s.repo.List(ctx, mode)
	if err != nil {
		return nil, err
	}
	out := make([]product.Response, 0, len(products))
	for i := range products {
		out = append(out, product.ToResponse(&products[i]))
	}
	return out, nil
}

// Get returns an active product.
func (s *Service) Get(ctx context.Context, id uint) (product.Response, error) {
	return cache.Fetch(ctx, s.loader, keyByID(id), func(ctx context.Context) (product.Response, error) {
		p, err := s.repo.FindByID(ctx, id, store.Active)
		if err != nil {
			return product.Response{}, err
		}
		return product.ToResponse(p), nil
	})
}

// Create validates req, stores the photo and inserts the product.
func (s *Service) Create(ctx context.Context, req product.CreateRequest) (product.Response, error) {
	upd, photo, err := s.validate(ctx, validation.Struct(req), product.UpdateRequest(req))
	if err != nil {
		return product.Response{}, err
	}

	p := &product.Product{}
	if err := s.persist(photo, &upd, func() error {
		upd.Apply(p)
		return s.repo.Create(ctx, p)
	}); err != nil {
		return product.Response{}, err
	}

	s.loader.Invalidate(ctx, keyPrefix)
	return product.ToResponse(p), nil
}

// Update merges the supplied fields into an active product.
func (s *Service) Update(ctx context.Context, id uint, req product.UpdateRequest) (product.Response, error) {
	p, err := s.repo.FindByID(ctx, id, store.Active)
	if err != nil {
		return product.Response{}, err
	}

	upd, photo, err := s.validate(ctx, validation.Struct(req), req)
	if err != nil {
		return product.Response{}, err
	}

	if err := s.persist(photo, &upd, func() error {
		upd.Apply(p)
		return s.repo.Update(ctx, p)
	}); err != nil {
		return product.Response{}, err
	}

	s.loader.Invalidate(ctx, keyPrefix)
	return product.ToResponse(p), nil
}

// Delete soft-deletes an active product.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.loader.Invalidate(ctx, keyPrefix)
	return nil
}

// Restore brings back a soft-deleted product.
func (s *Service) Restore(ctx context.Context, id uint) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return err
	}
	s.loader.Invalidate(ctx, keyPrefix)
	return nil
}

// validate applies the rules the struct tags cannot express and returns the
// parsed change set plus the validated photo payload, if one was sent.
func (s *Service) validate(ctx context.Context, errs validation.Errors, req product.UpdateRequest) (product.Update, *image.Payload, error) {
	upd := product.Update{ProductTypeID: req.ProductTypeID, Name: req.Name}

	if req.Price != nil {
		cents, err := product.ParsePrice(string(*req.Price))
		switch {
		case errors.Is(err, product.ErrPriceFormat):
			errs.Add("price", "The price field must be a number with exactly two decimal places, e.g. 12.50.")
		case errors.Is(err, product.ErrPriceTooLow):
			errs.Add("price", "The price field must be at least 0.01.")
		default:
			upd.Price = &cents
		}
	}

	if req.ProductTypeID != nil {
		ok, err := s.types.Exists(ctx, *req.ProductTypeID)
		if err != nil {
			return product.Update{}, nil, err
		}
		if !ok {
			errs.Add("product_type_id", "The selected product type id is invalid.")
		}
	}

	var photo *image.Payload
	if req.Photo != nil {
		p, err := s.images.Validate(*req.Photo)
		if err != nil {
			errs.Add("photo", photoMessage(err, s.images.MaxBytes()))
		} else {
			photo = &p
		}
	}

	if errs.Any() {
		return product.Update{}, nil, errs
	}
	return upd, photo, nil
}

// persist stores a new photo, runs write and removes the file again if write fails.
func (s *Service) persist(photo *image.Payload, upd *product.Update, write func() error) error {
	if photo == nil {
		return write()
	}

	path, err := s.images.Store(*photo)
	if err != nil {
		return err
	}
	upd.Photo = &path

	if err := write(); err != nil {
		if !photo.Existing() {
			if rmErr := s.images.Remove(path); rmErr != nil {
				log.Printf("[product] Warning: failed to remove orphaned image %s: %v", path, rmErr)
			}
		}
		return err
	}
	return nil
}

func photoMessage(err error, maxBytes int) string {
	switch {
	case errors.Is(err, image.ErrInvalidBase64):
		return "The photo field is not a valid base64 payload."
	case errors.Is(err, image.ErrMimeNotAllowed):
		return "The photo field has a file extension that is not allowed."
	case errors.Is(err, image.ErrTooLarge):
		return fmt.Sprintf("The photo field must not be greater than %d bytes.", maxBytes)
	default:
		return "The photo field has no valid existing file."
	}
}
