package middlewares

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	helper "ecoquest_backend/internals/helpers"
	"ecoquest_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan penting, recovery paling luar.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}

// ErrorHandler: semua error yang lolos dari handler dibungkus envelope yang sama.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return helper.JsonError(c, code, msg)
}
