package middlewares

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"ecoquest_backend/internals/configs"
)

// RecoveryMiddleware menangkap panic → 500 lewat ErrorHandler.
// Stack trace hanya dicetak di luar production.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: !configs.IsProduction(),
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Printf("🔥 panic %s %s rid=%s: %v", c.Method(), c.OriginalURL(), c.GetRespHeader("X-Request-ID"), fmt.Sprint(e))
		},
	})
}
