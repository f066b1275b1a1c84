package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	submissionController "ecoquest_backend/internals/features/eco/submissions/controller"
	submissionService "ecoquest_backend/internals/features/eco/submissions/service"
	helperOSS "ecoquest_backend/internals/helpers/oss"
	rateLimiter "ecoquest_backend/internals/middlewares"
)

// /api/u
func SubmissionUserRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := submissionController.NewSubmissionController(submissionService.NewSubmissionService(db, blob))

	subs := r.Group("/submissions")
	subs.Post("/", rateLimiter.UploadRateLimiter(), ctrl.Create)
	subs.Get("/list", ctrl.List)
	subs.Get("/:id", ctrl.GetByID)
}

// /api/t (teacher + admin)
func SubmissionTeacherRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := submissionController.NewSubmissionController(submissionService.NewSubmissionService(db, blob))

	subs := r.Group("/submissions")
	subs.Patch("/:id/review", ctrl.Review)
	subs.Delete("/:id", ctrl.Delete)
}
