package api

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/example/pastelaria-api/domain/auth"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/example/pastelaria-api/domain/validation"
	"github.com/gofiber/fiber/v2"
)

// Resource is the service surface behind one REST resource.
// C and U are the create and update payloads, R the entity response and
// S the create response.
type Resource[C, U, R, S any] interface {
	List(ctx context.Context, mode store.Mode) ([]R, error)
	Get(ctx context.Context, id uint) (R, error)
	Create(ctx context.Context, req C) (S, error)
	Update(ctx context.Context, id uint, req U) (R, error)
	Delete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
}

// resourceHandlers serves index, store, show, update, destroy and restore
// for one Resource.
type resourceHandlers[C, U, R, S any] struct {
	svc      Resource[C, U, R, S]
	entity   string
	notFound error
	created  func(S) any
}

func newResourceHandlers[C, U, R, S any](svc Resource[C, U, R, S], entity string, notFound error, created func(S) any) *resourceHandlers[C, U, R, S] {
	if created == nil {
		created = func(s S) any { return s }
	}
	return &resourceHandlers[C, U, R, S]{svc: svc, entity: entity, notFound: notFound, created: created}
}

func (h *resourceHandlers[C, U, R, S]) mount(r fiber.Router) {
	r.Get("/", h.index)
	r.Post("/", h.store)
	r.Get("/:id", h.show)
	r.Put("/:id", h.update)
	r.Delete("/:id", h.destroy)
	r.Post("/:id/restore", h.restore)
}

func (h *resourceHandlers[C, U, R, S]) index(c *fiber.Ctx) error {
	mode, err := store.ParseMode(c.Query("trashed"))
	if err != nil {
		return validation.Field("trashed", "The selected trashed is invalid.")
	}

	items, err := h.svc.List(c.UserContext(), mode)
	if err != nil {
		return err
	}
	if items == nil {
		items = []R{}
	}
	return c.JSON(items)
}

func (h *resourceHandlers[C, U, R, S]) store(c *fiber.Ctx) error {
	var req C
	if err := decode(c, &req); err != nil {
		return err
	}

	resp, err := h.svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(h.created(resp))
}

func (h *resourceHandlers[C, U, R, S]) show(c *fiber.Ctx) error {
	id, err := h.id(c)
	if err != nil {
		return err
	}

	resp, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *resourceHandlers[C, U, R, S]) update(c *fiber.Ctx) error {
	id, err := h.id(c)
	if err != nil {
		return err
	}

	var req U
	if err := decode(c, &req); err != nil {
		return err
	}

	resp, err := h.svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *resourceHandlers[C, U, R, S]) destroy(c *fiber.Ctx) error {
	id, err := h.id(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *resourceHandlers[C, U, R, S]) restore(c *fiber.Ctx) error {
	id, err := h.id(c)
	if err != nil {
		return err
	}

	if err := h.svc.Restore(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(MessageResponse{Message: h.entity + " restored successfully"})
}

// id parses the :id route parameter. An id that cannot exist is reported
// as not found.
func (h *resourceHandlers[C, U, R, S]) id(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, h.notFound
	}
	return uint(id), nil
}

func decode(c *fiber.Ctx, dst any) error {
	if err := json.Unmarshal(c.Body(), dst); err != nil {
		return validation.Field("body", "The request body is not valid JSON.")
	}
	return nil
}

// User returns the claims of the authenticated caller.
func User(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*auth.Claims)
	if !ok {
		return unauthorized(c, "Unauthenticated.")
	}
	return c.JSON(UserResponse{UserID: claims.UserID, Email: claims.Email})
}
