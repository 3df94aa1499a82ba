// file: internals/helpers/json_response.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const serverErrorMessage = "Server Error"

/* ===============================
   JSON responses (standard success)
=================================*/

// JsonList: {success, count, data} for GET collection
func JsonList[T any](c *fiber.Ctx, data []T) error {
	if data == nil {
		data = []T{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(data),
		"data":    data,
	})
}

// JsonOK: GET detail / PUT
func JsonOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// JsonCreated: POST
func JsonCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// JsonDeleted: DELETE, always an empty object as data
func JsonDeleted(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
	})
}

/* ===============================
   Error helpers (standard shape)
=================================*/

func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// JsonValidationError: 400 with one message per invalid field
func JsonValidationError(c *fiber.Ctx, messages []string) error {
	if messages == nil {
		messages = []string{}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   messages,
	})
}

// JsonServerError logs the cause and answers a generic 500.
func JsonServerError(c *fiber.Ctx, err error, msg string) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("reqid")).
		Msg(msg)
	return JsonError(c, fiber.StatusInternalServerError, serverErrorMessage)
}

// FromError maps the error taxonomy to the uniform envelope. label names the
// entity in NotFound/Conflict messages ("Mission", "News", ...).
func FromError(c *fiber.Ctx, err error, label string) error {
	if ve, ok := IsValidation(err); ok {
		return JsonValidationError(c, ve.Messages)
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return JsonError(c, fiber.StatusNotFound, label+" not found")
	case errors.Is(err, ErrConflict):
		return JsonError(c, fiber.StatusConflict, label+" was modified by another request")
	}
	return JsonServerError(c, err, label+" request failed")
}

// ErrorHandler is the app-level fallback (panics recovered by the recover
// middleware, unknown routes, body limits).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonServerError(c, err, "unhandled error")
}
