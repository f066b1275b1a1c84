package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	imageController "ecoquest_backend/internals/features/eco/image_uploads/controller"
	helperOSS "ecoquest_backend/internals/helpers/oss"
	rateLimiter "ecoquest_backend/internals/middlewares"
)

func ImageUploadUserRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := imageController.NewImageUploadController(db, blob)

	images := r.Group("/images")
	images.Post("/", rateLimiter.UploadRateLimiter(), ctrl.Upload)
	images.Get("/", ctrl.List)
	images.Delete("/:id", ctrl.Delete)
}
