package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolController "ecoquest_backend/internals/features/schools/schools/controller"
)

func SchoolPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := schoolController.NewSchoolController(db)
	r.Get("/schools", ctrl.List)
}

func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := schoolController.NewSchoolController(db)

	schools := r.Group("/schools")
	schools.Post("/", ctrl.Create)
	schools.Put("/:id", ctrl.Update)
	schools.Delete("/:id", ctrl.Delete)
	schools.Get("/:id/students", ctrl.Students)
}
