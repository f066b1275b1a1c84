package helper

import (
	"reflect"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

/* ===============================
   Envelope
=================================*/

// Semua respons: {success, message, data?, pagination?} atau
// {success:false, message, error_code, errors?}
type ErrorResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

var errorCodes = map[int]string{
	fiber.StatusBadRequest:          "BAD_REQUEST",
	fiber.StatusUnauthorized:        "UNAUTHORIZED",
	fiber.StatusForbidden:           "FORBIDDEN",
	fiber.StatusNotFound:            "NOT_FOUND",
	fiber.StatusConflict:            "CONFLICT",
	fiber.StatusUnprocessableEntity: "VALIDATION_ERROR",
	fiber.StatusTooManyRequests:     "RATE_LIMITED",
	fiber.StatusBadGateway:          "UPSTREAM_ERROR",
	fiber.StatusServiceUnavailable:  "SERVICE_UNAVAILABLE",
}

func errorCode(status int) string {
	if code, ok := errorCodes[status]; ok {
		return code
	}
	if status >= 500 {
		return "INTERNAL_ERROR"
	}
	return "ERROR"
}

func success(c *fiber.Ctx, status int, message string, data any) error {
	if message == "" {
		message = "ok"
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "message": message, "data": data})
}

/* ===============================
   Error
=================================*/

func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = utils.StatusMessage(status)
	}
	return c.Status(status).JSON(ErrorResponse{
		Message:   message,
		ErrorCode: errorCode(status),
	})
}

// JsonValidationError: 422 dengan pesan per field
func JsonValidationError(c *fiber.Ctx, fieldErrors map[string][]string) error {
	if fieldErrors == nil {
		fieldErrors = map[string][]string{}
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Message:   "validation failed",
		ErrorCode: errorCode(fiber.StatusUnprocessableEntity),
		Errors:    fieldErrors,
	})
}

/* ===============================
   Success
=================================*/

func JsonOK(c *fiber.Ctx, message string, data any) error {
	return success(c, fiber.StatusOK, message, data)
}

func JsonCreated(c *fiber.Ctx, message string, data any) error {
	return success(c, fiber.StatusCreated, message, data)
}

func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	return success(c, fiber.StatusOK, message, data)
}

func JsonDeleted(c *fiber.Ctx, message string, data any) error {
	return success(c, fiber.StatusOK, message, data)
}

// JsonList: data + blok pagination; count diisi dari panjang data
func JsonList(c *fiber.Ctx, message string, data any, p Pagination) error {
	if message == "" {
		message = "ok"
	}
	if p.Count == 0 {
		if rv := reflect.ValueOf(data); rv.Kind() == reflect.Slice {
			p.Count = rv.Len()
		}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": p,
	})
}
