package routes

import (
	pointController "ecoquest_backend/internals/features/progress/points/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func UserPointRoutes(router fiber.Router, db *gorm.DB) {
	userPointLogController := pointController.NewUserPointLogController(db)

	router.Get("/point-logs", userPointLogController.GetByUserID)
}
