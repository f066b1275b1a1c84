package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	maintenanceController "ecoquest_backend/internals/features/utils/maintenance/controller"
	helperOSS "ecoquest_backend/internals/helpers/oss"
)

func MaintenanceAdminRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := maintenanceController.NewMaintenanceController(db, blob)
	r.Delete("/wipe-data", ctrl.WipeData)
}
