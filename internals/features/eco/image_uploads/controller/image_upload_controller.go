package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/eco/image_uploads/dto"
	imageService "ecoquest_backend/internals/features/eco/image_uploads/service"
	helper "ecoquest_backend/internals/helpers"
	helperAuth "ecoquest_backend/internals/helpers/auth"
	helperOSS "ecoquest_backend/internals/helpers/oss"
)

type ImageUploadController struct {
	DB   *gorm.DB
	Blob helperOSS.BlobService
}

func NewImageUploadController(db *gorm.DB, blob helperOSS.BlobService) *ImageUploadController {
	return &ImageUploadController{DB: db, Blob: blob}
}

// POST /api/u/images (multipart: image, task_id?)
func (h *ImageUploadController) Upload(c *fiber.Ctx) error {
	if h.Blob == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Penyimpanan gambar belum dikonfigurasi")
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	fh, err := helperOSS.GetImageFile(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if fh == nil {
		return helper.JsonValidationError(c, map[string][]string{"image": {"file image wajib diisi"}})
	}

	var taskID *uuid.UUID
	if s := strings.TrimSpace(c.FormValue("task_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "task_id tidak valid")
		}
		taskID = &id
	}

	data, err := helperOSS.ReadFormImage(fh)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	obj, err := h.Blob.UploadImage(c.UserContext(), data, fh.Filename)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	row, err := imageService.RecordUpload(c.UserContext(), h.DB, obj, fh.Filename, userID, taskID)
	if err != nil {
		// rollback object supaya tidak yatim
		if derr := h.Blob.DeleteByPublicURL(c.UserContext(), obj.URL); derr != nil {
			log.Printf("[WARN] rollback object %s: %v", obj.Key, derr)
		}
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Upload berhasil", dto.FromModel(row))
}

// GET /api/u/images?task_id=&submission_id=
func (h *ImageUploadController) List(c *fiber.Ctx) error {
	var f imageService.ListFilter
	if s := strings.TrimSpace(c.Query("task_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "task_id tidak valid")
		}
		f.TaskID = &id
	}
	if s := strings.TrimSpace(c.Query("submission_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "submission_id tidak valid")
		}
		f.SubmissionID = &id
	}
	if !helperAuth.IsTeacherOrAdmin(c) {
		self, err := helperAuth.GetUserIDFromToken(c)
		if err != nil {
			return helper.FromServiceError(c, err)
		}
		f.UploadedBy = &self
	}

	p := helper.ResolvePaging(c, 20, 100)
	f.Limit, f.Offset = p.Limit, p.Offset
	rows, total, err := imageService.List(c.UserContext(), h.DB, f)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// DELETE /api/u/images/:id
func (h *ImageUploadController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := imageService.GetByID(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if !helperAuth.IsAdmin(c) {
		self, _ := helperAuth.GetUserIDFromToken(c)
		if row.ImageUploadUploadedBy != self {
			return helper.JsonError(c, fiber.StatusForbidden, "Bukan upload milik Anda")
		}
	}
	if err := imageService.Delete(c.UserContext(), h.DB, h.Blob, row); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Gambar dihapus", fiber.Map{"image_upload_id": id})
}
