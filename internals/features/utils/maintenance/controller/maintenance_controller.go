package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecoquest_backend/internals/configs"
	wipeService "ecoquest_backend/internals/features/utils/maintenance/service"
	helper "ecoquest_backend/internals/helpers"
	helperAuth "ecoquest_backend/internals/helpers/auth"
	helperOSS "ecoquest_backend/internals/helpers/oss"
)

type MaintenanceController struct {
	DB   *gorm.DB
	Blob helperOSS.BlobService
}

func NewMaintenanceController(db *gorm.DB, blob helperOSS.BlobService) *MaintenanceController {
	return &MaintenanceController{DB: db, Blob: blob}
}

// DELETE /api/a/wipe-data
func (mc *MaintenanceController) WipeData(c *fiber.Ctx) error {
	if !configs.AllowDataWipe || configs.IsProduction() {
		return helper.JsonError(c, fiber.StatusForbidden, "Wipe data dinonaktifkan di environment ini")
	}
	uid, _ := helperAuth.GetUserIDFromToken(c)
	log.Printf("⚠️ [MAINTENANCE] wipe-data diminta oleh %s", uid)

	out, err := wipeService.WipeAll(c.UserContext(), mc.DB, mc.Blob)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "All data wiped", out)
}
