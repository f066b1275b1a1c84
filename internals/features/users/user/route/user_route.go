package route

import (
	userController "ecoquest_backend/internals/features/users/user/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func UserPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)
	r.Get("/leaderboard", ctrl.Leaderboard)
}

func UserUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := r.Group("/users")
	users.Get("/", ctrl.List)
	users.Get("/user", ctrl.GetOne)
}

func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := r.Group("/users")
	users.Post("/", ctrl.Upsert)
	users.Delete("/:id", ctrl.Delete)
}
