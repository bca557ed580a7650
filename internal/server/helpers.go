package server

import (
	"strconv"

	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// userID returns the authenticated user's id. Only valid after AuthRequired.
func userID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// parseID parses a numeric path parameter. A non-numeric value maps to 400,
// mirroring how malformed object ids were rejected before handler logic ran.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + param)
	}
	return uint(id), nil
}
