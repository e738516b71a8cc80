package helper

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError converts an error bubbling out of a Transaction (usually a
// *fiber.Error) into the consistent JSON envelope via helper.Error.
// Anything else is logged and collapsed to an opaque 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return Error(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] unhandled: %v", err)
	return Error(c, fiber.StatusInternalServerError, "Internal server error")
}
