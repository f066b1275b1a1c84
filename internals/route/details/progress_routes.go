package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lessonRoute "ecoquest_backend/internals/features/progress/lessons/route"
	pointRoute "ecoquest_backend/internals/features/progress/points/route"
	statsRoute "ecoquest_backend/internals/features/progress/stats/route"
)

func ProgressPublicRoutes(r fiber.Router, db *gorm.DB) {
	statsRoute.StatsPublicRoutes(r, db)
}

func ProgressUserRoutes(r fiber.Router, db *gorm.DB) {
	lessonRoute.LessonUserRoutes(r, db)
	pointRoute.UserPointRoutes(r, db)
}

func ProgressAdminRoutes(r fiber.Router, db *gorm.DB) {
	statsRoute.StatsAdminRoutes(r, db)
}
