package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/progress/lessons/dto"
	lessonService "ecoquest_backend/internals/features/progress/lessons/service"
	helper "ecoquest_backend/internals/helpers"
	helperAuth "ecoquest_backend/internals/helpers/auth"
)

type LessonController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db, Validator: validator.New()}
}

// POST /api/u/lessons {user_id?, lesson_id, points}
func (lc *LessonController) Complete(c *fiber.Ctx) error {
	var req dto.CompleteLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.UserID = strings.TrimSpace(req.UserID)
	req.LessonID = strings.TrimSpace(req.LessonID)
	if handled, err := helper.ValidateStruct(c, lc.Validator, &req); handled {
		return err
	}

	self, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	target := self
	if req.UserID != "" {
		target, _ = uuid.Parse(req.UserID)
		if target != self && !helperAuth.IsTeacherOrAdmin(c) {
			return helper.JsonError(c, fiber.StatusForbidden, "Hanya boleh menyelesaikan lesson untuk akun sendiri")
		}
	}

	out, err := lessonService.CompleteLesson(c.UserContext(), lc.DB, target, req.LessonID, req.Points)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Lesson completed", out)
}
