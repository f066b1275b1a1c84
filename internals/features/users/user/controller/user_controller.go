package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/users/user/dto"
	userService "ecoquest_backend/internals/features/users/user/service"
	helper "ecoquest_backend/internals/helpers"
)

type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validator: validator.New()}
}

// GET /api/u/users?role=&school=&q=&page=&per_page=
func (uc *UserController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := userService.ListUsers(c.UserContext(), uc.DB, userService.ListFilter{
		Role:   strings.ToLower(strings.TrimSpace(c.Query("role"))),
		School: strings.TrimSpace(c.Query("school")),
		Q:      strings.TrimSpace(c.Query("q")),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/u/users/user?user_id= | ?email=
func (uc *UserController) GetOne(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Query("user_id"))
	email := strings.TrimSpace(c.Query("email"))

	switch {
	case idStr != "":
		id, err := uuid.Parse(idStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
		}
		u, err := userService.GetUserByID(c.UserContext(), uc.DB, id)
		if err != nil {
			return helper.FromServiceError(c, err)
		}
		return helper.JsonOK(c, "ok", dto.FromModel(u))
	case email != "":
		u, err := userService.GetUserByEmail(c.UserContext(), uc.DB, email)
		if err != nil {
			return helper.FromServiceError(c, err)
		}
		return helper.JsonOK(c, "ok", dto.FromModel(u))
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "user_id atau email wajib diisi")
	}
}

// POST /api/a/users
func (uc *UserController) Upsert(c *fiber.Ctx) error {
	var req dto.UpsertUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if handled, err := helper.ValidateStruct(c, uc.Validator, &req); handled {
		return err
	}

	u, created, err := userService.UpsertUser(c.UserContext(), uc.DB, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "User created", dto.FromModel(u))
	}
	return helper.JsonUpdated(c, "User updated", dto.FromModel(u))
}

// DELETE /api/a/users/:id
func (uc *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	if err := userService.DeleteUser(c.UserContext(), uc.DB, id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"user_id": id})
}

// GET /api/public/leaderboard?school=&limit=
func (uc *UserController) Leaderboard(c *fiber.Ctx) error {
	rows, err := userService.Leaderboard(c.UserContext(), uc.DB, strings.TrimSpace(c.Query("school")), c.QueryInt("limit", 10))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}
