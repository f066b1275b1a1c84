package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	statsController "ecoquest_backend/internals/features/progress/stats/controller"
)

func StatsPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := statsController.NewGlobalStatsController(db)
	r.Get("/stats", ctrl.Get)
}

func StatsAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := statsController.NewGlobalStatsController(db)

	stats := r.Group("/stats")
	stats.Post("/", ctrl.Update)
	stats.Get("/overview", ctrl.Overview)
}
