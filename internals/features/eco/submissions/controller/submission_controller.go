package controller

import (
	"log"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	imageService "ecoquest_backend/internals/features/eco/image_uploads/service"
	"ecoquest_backend/internals/features/eco/submissions/dto"
	"ecoquest_backend/internals/features/eco/submissions/model"
	"ecoquest_backend/internals/features/eco/submissions/service"
	helper "ecoquest_backend/internals/helpers"
	helperAuth "ecoquest_backend/internals/helpers/auth"
	helperOSS "ecoquest_backend/internals/helpers/oss"
)

type SubmissionController struct {
	Svc       *service.SubmissionService
	Validator *validator.Validate
}

func NewSubmissionController(svc *service.SubmissionService) *SubmissionController {
	return &SubmissionController{Svc: svc, Validator: validator.New()}
}

/* =========================================================
   CREATE
========================================================= */

// POST /api/u/submissions
// JSON: {task_id, evidence, location, description?}
// multipart: field "image" di-upload ke OSS dulu, URL-nya jadi evidence.
func (h *SubmissionController) Create(c *fiber.Ctx) error {
	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if handled, err := helper.ValidateStruct(c, h.Validator, &req); handled {
		return err
	}

	callerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	studentID := callerID
	if req.StudentID != "" {
		sid, _ := uuid.Parse(req.StudentID)
		if sid != callerID && !helperAuth.IsTeacherOrAdmin(c) {
			return helper.JsonError(c, fiber.StatusForbidden, "Tidak boleh mengirim submission atas nama user lain")
		}
		studentID = sid
	}
	taskID, _ := uuid.Parse(req.TaskID)

	uploaded := false
	if helperOSS.IsMultipart(c) {
		fh, err := helperOSS.GetImageFile(c)
		if err != nil {
			return helper.FromServiceError(c, err)
		}
		if fh != nil {
			if h.Svc.Blob == nil {
				return helper.JsonError(c, fiber.StatusServiceUnavailable, "Penyimpanan gambar belum dikonfigurasi")
			}
			url, err := h.uploadEvidence(c, fh, callerID, taskID)
			if err != nil {
				return helper.FromServiceError(c, err)
			}
			req.Evidence = url
			uploaded = true
		}
	}
	if req.Evidence == "" {
		return helper.JsonValidationError(c, map[string][]string{"evidence": {"evidence wajib diisi (URL atau file image)"}})
	}

	sub, err := h.Svc.Create(c.UserContext(), service.CreateInput{
		TaskID:      taskID,
		StudentID:   studentID,
		SubmittedBy: callerID,
		Evidence:    req.Evidence,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		if uploaded {
			h.discardUpload(c, req.Evidence)
		}
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Submission berhasil dikirim", dto.FromModel(sub))
}

/* =========================================================
   READ
========================================================= */

// GET /api/u/submissions/list?student_id=&task_id=&status=&page=&per_page=
func (h *SubmissionController) List(c *fiber.Ctx) error {
	studentID, err := service.ParseOptionalUUID(strings.TrimSpace(c.Query("student_id")), "student_id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	taskID, err := service.ParseOptionalUUID(strings.TrimSpace(c.Query("task_id")), "task_id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	switch model.SubmissionStatus(status) {
	case "", model.SubmissionStatusPending, model.SubmissionStatusApproved, model.SubmissionStatusRejected:
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "status harus pending, approved, atau rejected")
	}

	// student hanya melihat miliknya sendiri
	if !helperAuth.IsTeacherOrAdmin(c) {
		self, err := helperAuth.GetUserIDFromToken(c)
		if err != nil {
			return helper.FromServiceError(c, err)
		}
		studentID = &self
	}

	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := h.Svc.List(c.UserContext(), service.ListFilter{
		StudentID: studentID,
		TaskID:    taskID,
		Status:    status,
		Limit:     p.Limit,
		Offset:    p.Offset,
	})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/u/submissions/:id
func (h *SubmissionController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	sub, err := h.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if !helperAuth.IsTeacherOrAdmin(c) {
		self, _ := helperAuth.GetUserIDFromToken(c)
		if sub.SubmissionStudentID != self {
			return helper.JsonError(c, fiber.StatusForbidden, "Bukan submission milik Anda")
		}
	}
	return helper.JsonOK(c, "ok", dto.FromModel(sub))
}

/* =========================================================
   REVIEW / DELETE (teacher & admin)
========================================================= */

// PATCH /api/t/submissions/:id/review
func (h *SubmissionController) Review(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.ReviewSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if handled, err := helper.ValidateStruct(c, h.Validator, &req); handled {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	out, err := h.Svc.Review(c.UserContext(), id, reviewerID, model.SubmissionStatus(req.Status), req.Comments)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Submission berhasil direview", out)
}

// DELETE /api/t/submissions/:id
func (h *SubmissionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	out, err := h.Svc.DeleteWithReversal(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Submission deleted and points reversed successfully", out)
}

/* =========================================================
   Helpers
========================================================= */

func (h *SubmissionController) uploadEvidence(c *fiber.Ctx, fh *multipart.FileHeader, uploader, taskID uuid.UUID) (string, error) {
	data, err := helperOSS.ReadFormImage(fh)
	if err != nil {
		return "", err
	}
	obj, err := h.Svc.Blob.UploadImage(c.UserContext(), data, fh.Filename)
	if err != nil {
		return "", err
	}
	if _, err := imageService.RecordUpload(c.UserContext(), h.Svc.DB, obj, fh.Filename, uploader, &taskID); err != nil {
		// object sudah tersimpan; metadata gagal cukup di-log
		log.Printf("[WARN] simpan metadata upload %s: %v", obj.Key, err)
	}
	return obj.URL, nil
}

// discardUpload: submission gagal dibuat, object + metadata yang baru di-upload dibuang
func (h *SubmissionController) discardUpload(c *fiber.Ctx, url string) {
	if err := h.Svc.Blob.DeleteByPublicURL(c.UserContext(), url); err != nil {
		log.Printf("[WARN] buang upload %s: %v", url, err)
	}
	if err := imageService.DeleteByURL(c.UserContext(), h.Svc.DB, url); err != nil {
		log.Printf("[WARN] buang metadata upload %s: %v", url, err)
	}
}
