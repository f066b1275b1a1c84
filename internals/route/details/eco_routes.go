package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	imageRoute "ecoquest_backend/internals/features/eco/image_uploads/route"
	submissionRoute "ecoquest_backend/internals/features/eco/submissions/route"
	taskRoute "ecoquest_backend/internals/features/eco/tasks/route"
	helperOSS "ecoquest_backend/internals/helpers/oss"
)

// /api/u
func EcoUserRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	submissionRoute.SubmissionUserRoutes(r, db, blob)
	taskRoute.TaskUserRoutes(r, db)
	imageRoute.ImageUploadUserRoutes(r, db, blob)
}

// /api/t
func EcoTeacherRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	submissionRoute.SubmissionTeacherRoutes(r, db, blob)
	taskRoute.TaskTeacherRoutes(r, db)
}
