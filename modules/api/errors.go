package api

import (
	"errors"
	"log"

	"github.com/example/pastelaria-api/domain/customer"
	"github.com/example/pastelaria-api/domain/order"
	"github.com/example/pastelaria-api/domain/product"
	"github.com/example/pastelaria-api/domain/producttype"
	"github.com/example/pastelaria-api/domain/validation"
	"github.com/gofiber/fiber/v2"
)

const genericErrorMessage = "An error occurred while processing the request."

var notFoundMessages = []struct {
	err     error
	message string
}{
	{customer.ErrNotFound, "Customer not found."},
	{producttype.ErrNotFound, "Product type not found."},
	{product.ErrNotFound, "Product not found."},
	{order.ErrNotFound, "Order not found."},
}

// errorHandler maps handler errors to the {"message"} response shape.
func errorHandler(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) && verrs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Message: verrs.First(),
			Errors:  verrs,
		})
	}

	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: nf.message})
		}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		message := fe.Message
		if fe.Code == fiber.StatusNotFound {
			message = "Not found."
		}
		if fe.Code >= fiber.StatusInternalServerError {
			log.Printf("[api] %s %s failed: %v", c.Method(), c.Path(), err)
			message = genericErrorMessage
		}
		return c.Status(fe.Code).JSON(ErrorResponse{Message: message})
	}

	log.Printf("[api] %s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: genericErrorMessage})
}
