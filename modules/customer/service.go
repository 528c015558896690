package customer

import (
	"context"
	"errors"

	"github.com/example/pastelaria-api/domain/customer"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/example/pastelaria-api/domain/validation"
)

const msgEmailTaken = "The email has already been taken."

// Service implements the customer use cases.
type Service struct {
	repo *customer.Repository
}

// NewService creates a new customer service.
func NewService(repo *customer.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the customers visible under mode.
func (s *Service) List(ctx context.Context, mode store.Mode) ([]customer.Response, error) {
	customers, err := s.repo.List(ctx, mode)
	if err != nil {
		return nil, err
	}
	out := make([]customer.Response, 0, len(customers))
	for i := range customers {
		out = append(out, customer.ToResponse(&customers[i]))
	}
	return out, nil
}

// Get returns an active customer.
func (s *Service) Get(ctx context.Context, id uint) (customer.Response, error) {
	c, err := s.repo.FindByID(ctx, id, store.Active)
	if err != nil {
		return customer.Response{}, err
	}
	return customer.ToResponse(c), nil
}

// Create validates req and stores a new customer.
func (s *Service) Create(ctx context.Context, req customer.CreateRequest) (customer.Response, error) {
	errs := validation.Struct(req)
	if err := s.checkEmail(ctx, req.Email, 0, errs); err != nil {
		return customer.Response{}, err
	}
	if errs.Any() {
		return customer.Response{}, errs
	}

	c := req.Entity()
	if err := s.repo.Create(ctx, c); err != nil {
		return customer.Response{}, emailConflict(err)
	}
	return customer.ToResponse(c), nil
}

// Update merges the supplied fields into an active customer.
func (s *Service) Update(ctx context.Context, id uint, req customer.UpdateRequest) (customer.Response, error) {
	c, err := s.repo.FindByID(ctx, id, store.Active)
	if err != nil {
		return customer.Response{}, err
	}

	errs := validation.Struct(req)
	if err := s.checkEmail(ctx, req.Email, id, errs); err != nil {
		return customer.Response{}, err
	}
	if errs.Any() {
		return customer.Response{}, errs
	}

	req.Apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return customer.Response{}, emailConflict(err)
	}
	return customer.ToResponse(c), nil
}

// Delete soft-deletes an active customer.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// Restore brings back a soft-deleted customer unless its email was reused meanwhile.
func (s *Service) Restore(ctx context.Context, id uint) error {
	return emailConflict(s.repo.Restore(ctx, id))
}

// checkEmail adds the uniqueness message when email passed its format rules.
func (s *Service) checkEmail(ctx context.Context, email *string, exceptID uint, errs validation.Errors) error {
	if email == nil {
		return nil
	}
	if _, invalid := errs["email"]; invalid {
		return nil
	}
	taken, err := s.repo.EmailTaken(ctx, *email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		errs.Add("email", msgEmailTaken)
	}
	return nil
}

// emailConflict turns a unique index violation into the validation failure.
func emailConflict(err error) error {
	if errors.Is(err, customer.ErrEmailTaken) {
		return validation.Field("email", msgEmailTaken)
	}
	return err
}
