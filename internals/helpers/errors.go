package helper

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error kategori untuk layer service. Service membungkus dengan %w,
// controller memetakan ke HTTP status lewat FromServiceError.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUpstream     = errors.New("upstream error")
	ErrUnavailable  = errors.New("service unavailable")
)

// StatusFromError: kategori → HTTP status (500 kalau tidak dikenal)
func StatusFromError(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidState):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrValidation):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrUpstream):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// FromServiceError menulis response error standar dari error service.
// Pesan internal (500) tidak dibocorkan ke client.
func FromServiceError(c *fiber.Ctx, err error) error {
	status := StatusFromError(err)
	if status >= fiber.StatusInternalServerError && status != fiber.StatusBadGateway && status != fiber.StatusServiceUnavailable {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
		return JsonError(c, status, "Internal server error")
	}
	return JsonError(c, status, err.Error())
}

// IsUniqueViolation: Postgres SQLSTATE 23505, atau pesan UNIQUE dari sqlite (dev/test)
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ConflictOr: unique violation → ErrConflict dengan pesan, selain itu err apa adanya
func ConflictOr(err error, msg string) error {
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	}
	return err
}
