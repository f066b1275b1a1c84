package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecoquest_backend/internals/configs"
	authController "ecoquest_backend/internals/features/users/auth/controller"
	rateLimiter "ecoquest_backend/internals/middlewares"
	authMw "ecoquest_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authCtrl := authController.NewAuthController(db)

	// 🔓 Public
	publicAuth := app.Group("/api/auth")
	publicAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authCtrl.Register)
	publicAuth.Post("/login", rateLimiter.LoginRateLimiter(), authCtrl.Login)
	publicAuth.Post("/google", rateLimiter.LoginRateLimiter(), authCtrl.LoginGoogle)

	// 🔐 Protected (middleware per-route supaya tidak ikut ke /login)
	jwt := authMw.AuthJWT(db, authMw.AuthJWTOpts{Secret: configs.JWTSecret, AllowCookieFallback: true})
	publicAuth.Get("/me", jwt, authCtrl.Me)
	publicAuth.Post("/logout", jwt, authCtrl.Logout)
}
