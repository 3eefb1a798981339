package handlers

import (
	"log"

	"litter-cleanup-system/apperrors"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to its HTTP status. Internal causes
// are logged here and never leaked to the caller.
func respondError(c *fiber.Ctx, err error) error {
	if apperrors.KindOf(err) == apperrors.KindInternal {
		log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
		"error": apperrors.Message(err),
	})
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
