package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lessonController "ecoquest_backend/internals/features/progress/lessons/controller"
)

func LessonUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := lessonController.NewLessonController(db)
	r.Post("/lessons", ctrl.Complete)
}
