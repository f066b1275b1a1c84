package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/schools/schools/dto"
	schoolService "ecoquest_backend/internals/features/schools/schools/service"
	userDTO "ecoquest_backend/internals/features/users/user/dto"
	userService "ecoquest_backend/internals/features/users/user/service"
	helper "ecoquest_backend/internals/helpers"
)

type SchoolController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db, Validator: validator.New()}
}

// GET /api/public/schools?q=
func (sc *SchoolController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	rows, total, err := schoolService.ListSchools(c.UserContext(), sc.DB, q, p.Limit, p.Offset)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// POST /api/a/schools
func (sc *SchoolController) Create(c *fiber.Ctx) error {
	var req dto.UpsertSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if handled, err := helper.ValidateStruct(c, sc.Validator, &req); handled {
		return err
	}
	s, err := schoolService.CreateSchool(c.UserContext(), sc.DB, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Sekolah dibuat", dto.FromModel(s))
}

// PUT /api/a/schools/:id
func (sc *SchoolController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpsertSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if handled, err := helper.ValidateStruct(c, sc.Validator, &req); handled {
		return err
	}
	s, err := schoolService.UpdateSchool(c.UserContext(), sc.DB, id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Sekolah diperbarui", dto.FromModel(s))
}

// DELETE /api/a/schools/:id
func (sc *SchoolController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if err := schoolService.DeleteSchool(c.UserContext(), sc.DB, id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Sekolah dihapus", fiber.Map{"school_id": id})
}

// GET /api/a/schools/:id/students
func (sc *SchoolController) Students(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	s, err := schoolService.GetSchool(c.UserContext(), sc.DB, id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := userService.StudentsBySchool(c.UserContext(), sc.DB, s.SchoolName)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"school":   dto.FromModel(s),
		"students": userDTO.FromModels(rows),
	})
}
