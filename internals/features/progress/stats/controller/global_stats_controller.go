package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/progress/stats/dto"
	statsService "ecoquest_backend/internals/features/progress/stats/service"
	helper "ecoquest_backend/internals/helpers"
)

type GlobalStatsController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewGlobalStatsController(db *gorm.DB) *GlobalStatsController {
	return &GlobalStatsController{DB: db, Validator: validator.New()}
}

// GET /api/public/stats
func (sc *GlobalStatsController) Get(c *fiber.Ctx) error {
	s, err := statsService.Get(sc.DB.WithContext(c.UserContext()))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	c.Set("Cache-Control", "public, max-age=30")
	return helper.JsonOK(c, "ok", s)
}

// POST /api/a/stats
func (sc *GlobalStatsController) Update(c *fiber.Ctx) error {
	var req dto.UpdateGlobalStatsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if handled, err := helper.ValidateStruct(c, sc.Validator, &req); handled {
		return err
	}
	s, err := statsService.Update(sc.DB.WithContext(c.UserContext()), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Global stats diperbarui", s)
}

// GET /api/a/stats/overview
func (sc *GlobalStatsController) Overview(c *fiber.Ctx) error {
	out, err := statsService.Overview(c.UserContext(), sc.DB)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
