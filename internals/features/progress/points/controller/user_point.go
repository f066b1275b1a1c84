package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pointService "ecoquest_backend/internals/features/progress/points/service"
	helper "ecoquest_backend/internals/helpers"
	helperAuth "ecoquest_backend/internals/helpers/auth"
)

type UserPointLogController struct {
	DB *gorm.DB
}

func NewUserPointLogController(db *gorm.DB) *UserPointLogController {
	return &UserPointLogController{DB: db}
}

// 🟢 GET /api/u/point-logs
// Riwayat poin milik user dari token (approval, reversal, lesson).
func (ctrl *UserPointLogController) GetByUserID(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	p := helper.ResolvePaging(c, 20, 200)
	logs, total, err := pointService.ListPointLogs(ctrl.DB.WithContext(c.UserContext()), userID, p.Limit, p.Offset)
	if err != nil {
		log.Println("[ERROR] Failed to fetch user_point_logs:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch point history")
	}

	return helper.JsonList(c, "ok", logs, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
