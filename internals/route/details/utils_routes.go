package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	maintenanceRoute "ecoquest_backend/internals/features/utils/maintenance/route"
	helperOSS "ecoquest_backend/internals/helpers/oss"
)

func UtilsAdminRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	maintenanceRoute.MaintenanceAdminRoutes(r, db, blob)
}
