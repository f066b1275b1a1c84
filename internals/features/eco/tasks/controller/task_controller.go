package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/eco/tasks/dto"
	"ecoquest_backend/internals/features/eco/tasks/model"
	taskService "ecoquest_backend/internals/features/eco/tasks/service"
	helper "ecoquest_backend/internals/helpers"
	helperAuth "ecoquest_backend/internals/helpers/auth"
)

type TaskController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db, Validator: validator.New()}
}

// GET /api/u/tasks?category=
func (tc *TaskController) List(c *fiber.Ctx) error {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	if category != "" && !model.TaskCategory(category).Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "category tidak dikenal")
	}
	p := helper.ResolvePaging(c, 50, 200)
	rows, total, err := taskService.ListTasks(c.UserContext(), tc.DB, category, p.Limit, p.Offset)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/u/tasks/:id
func (tc *TaskController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	t, err := taskService.GetTask(c.UserContext(), tc.DB, id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(t))
}

// POST /api/t/tasks
func (tc *TaskController) Create(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if handled, err := helper.ValidateStruct(c, tc.Validator, &req); handled {
		return err
	}

	t := model.TaskModel{
		TaskTitle:       req.TaskTitle,
		TaskDescription: req.TaskDescription,
		TaskCategory:    model.TaskCategory(req.TaskCategory),
		TaskPoints:      req.TaskPoints,
	}
	if uid, err := helperAuth.GetUserIDFromToken(c); err == nil {
		t.TaskCreatedBy = &uid
	}
	if err := taskService.CreateTask(c.UserContext(), tc.DB, &t); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Task dibuat", dto.FromModel(t))
}

// PUT /api/t/tasks/:id
func (tc *TaskController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if handled, err := helper.ValidateStruct(c, tc.Validator, &req); handled {
		return err
	}
	t, err := taskService.UpdateTask(c.UserContext(), tc.DB, id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Task diperbarui", dto.FromModel(t))
}

// DELETE /api/t/tasks/:id
func (tc *TaskController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if err := taskService.DeleteTask(c.UserContext(), tc.DB, id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Task dihapus", fiber.Map{"task_id": id})
}
