package errors

import (
	"errors"

	"simplebanking/internal/constants"
	"simplebanking/internal/service"

	"github.com/gofiber/fiber/v2"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.SendStatus(fiberErr.Code)
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"message": "Could not process the request",
		})
	}
}

var statusMap = map[string]int{
	constants.ErrCodeAmountNotPositive: fiber.StatusBadRequest,
	constants.ErrCodeInsufficientFunds: fiber.StatusBadRequest,
	constants.ErrCodeCurrencyMismatch:  fiber.StatusBadRequest,
	constants.ErrCodeUserExisted:       fiber.StatusBadRequest,
	constants.ErrCodeValidationFailed:  fiber.StatusBadRequest,
	constants.ErrCodeUserNotFound:      fiber.StatusNotFound,
	constants.ErrCodeAccountNotFound:   fiber.StatusNotFound,
	constants.ErrCodeForbidden:         fiber.StatusForbidden,
	constants.ErrCodeOperationFailed:   fiber.StatusInternalServerError,
}

// handleServiceError translates a service error into the HTTP contract:
// rejections carry a bare message string, not-found and forbidden answers
// carry no body at all.
func handleServiceError(c *fiber.Ctx, err service.Error) error {
	status, known := statusMap[err.Code]
	if !known {
		status = fiber.StatusInternalServerError
	}

	switch status {
	case fiber.StatusBadRequest:
		return c.Status(status).JSON(err.Message)
	case fiber.StatusInternalServerError:
		return c.Status(status).JSON(fiber.Map{
			"error":   "Internal server error",
			"message": "Could not process the request",
		})
	default:
		return c.SendStatus(status)
	}
}
