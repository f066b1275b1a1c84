package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	taskController "ecoquest_backend/internals/features/eco/tasks/controller"
)

func TaskUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := taskController.NewTaskController(db)

	tasks := r.Group("/tasks")
	tasks.Get("/", ctrl.List)
	tasks.Get("/:id", ctrl.GetByID)
}

func TaskTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := taskController.NewTaskController(db)

	tasks := r.Group("/tasks")
	tasks.Post("/", ctrl.Create)
	tasks.Put("/:id", ctrl.Update)
	tasks.Delete("/:id", ctrl.Delete)
}
