package handlers

import (
	"backoffice/validator"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func successWithCount(c *fiber.Ctx, data interface{}, count int) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "count": count})
}

func successWithMessage(c *fiber.Ctx, data interface{}, message string) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "message": message})
}

func created(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"message": message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func validationError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Validation failed",
			"errors":  verrs,
		})
	}
	return badRequest(c, err.Error())
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// parseID parses a positive integer route parameter.
func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + param)
	}
	return id, nil
}

// auditUser reads the acting user from the X-User-ID header; audit rows carry
// an empty user when the caller does not identify itself.
func auditUser(c *fiber.Ctx) string {
	return c.Get("X-User-ID")
}
