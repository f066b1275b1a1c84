package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	imageModel "ecoquest_backend/internals/features/eco/image_uploads/model"
	"ecoquest_backend/internals/features/eco/submissions/dto"
	"ecoquest_backend/internals/features/eco/submissions/model"
	taskModel "ecoquest_backend/internals/features/eco/tasks/model"
	pointModel "ecoquest_backend/internals/features/progress/points/model"
	pointService "ecoquest_backend/internals/features/progress/points/service"
	statsService "ecoquest_backend/internals/features/progress/stats/service"
	userModel "ecoquest_backend/internals/features/users/user/model"
	helper "ecoquest_backend/internals/helpers"
	helperOSS "ecoquest_backend/internals/helpers/oss"
)

type SubmissionService struct {
	DB   *gorm.DB
	Blob helperOSS.BlobService // boleh nil (OSS tidak dikonfigurasi)
}

func NewSubmissionService(db *gorm.DB, blob helperOSS.BlobService) *SubmissionService {
	return &SubmissionService{DB: db, Blob: blob}
}

type CreateInput struct {
	TaskID      uuid.UUID
	StudentID   uuid.UUID
	SubmittedBy uuid.UUID // caller; boleh beda dengan StudentID (guru atas nama siswa)
	Evidence    string
	Location    string
	Description *string
}

type ListFilter struct {
	StudentID *uuid.UUID
	TaskID    *uuid.UUID
	Status    string
	Limit     int
	Offset    int
}

// MLConfidence: skor tampilan 70..99, bukan hasil model apapun
func MLConfidence() int {
	return rand.IntN(30) + 70
}

/* =========================================================
   CREATE
========================================================= */

func (s *SubmissionService) Create(ctx context.Context, in CreateInput) (model.SubmissionModel, error) {
	if in.Evidence == "" {
		return model.SubmissionModel{}, fmt.Errorf("%w: evidence is required", helper.ErrValidation)
	}
	if in.Location == "" {
		return model.SubmissionModel{}, fmt.Errorf("%w: location is required", helper.ErrValidation)
	}

	db := s.DB.WithContext(ctx)

	var task taskModel.TaskModel
	if err := db.Select("task_id").First(&task, "task_id = ?", in.TaskID).Error; err != nil {
		return model.SubmissionModel{}, notFoundOr(err, "task")
	}
	var student userModel.UserModel
	if err := db.Select("user_id").First(&student, "user_id = ?", in.StudentID).Error; err != nil {
		return model.SubmissionModel{}, notFoundOr(err, "student")
	}

	// satu submission aktif per (student, task); yang rejected boleh diulang
	var active int64
	if err := db.Model(&model.SubmissionModel{}).
		Where("submission_student_id = ? AND submission_task_id = ?", in.StudentID, in.TaskID).
		Where("submission_status IN ?", []model.SubmissionStatus{model.SubmissionStatusPending, model.SubmissionStatusApproved}).
		Count(&active).Error; err != nil {
		return model.SubmissionModel{}, err
	}
	if active > 0 {
		return model.SubmissionModel{}, fmt.Errorf("%w: submission for this task already exists", helper.ErrConflict)
	}
	if err := s.checkEvidenceOwner(db, in); err != nil {
		return model.SubmissionModel{}, err
	}

	sub := model.SubmissionModel{
		SubmissionTaskID:       in.TaskID,
		SubmissionStudentID:    in.StudentID,
		SubmissionEvidence:     in.Evidence,
		SubmissionLocation:     in.Location,
		SubmissionDescription:  in.Description,
		SubmissionStatus:       model.SubmissionStatusPending,
		SubmissionMLConfidence: MLConfidence(),
	}
	if err := db.Create(&sub).Error; err != nil {
		log.Println("[ERROR] Failed to create submission:", err)
		return model.SubmissionModel{}, err
	}

	// metadata upload (kalau evidence dari POST /images) ditautkan ke submission
	if err := db.Model(&imageModel.ImageUploadModel{}).
		Where("image_upload_url = ? AND image_upload_submission_id IS NULL", sub.SubmissionEvidence).
		Updates(map[string]interface{}{
			"image_upload_submission_id": sub.SubmissionID,
			"image_upload_task_id":       sub.SubmissionTaskID,
		}).Error; err != nil {
		log.Printf("[WARN] link image_upload → submission %s: %v", sub.SubmissionID, err)
	}

	log.Printf("[SUBMISSION] created id=%s student=%s task=%s", sub.SubmissionID, in.StudentID, in.TaskID)
	return sub, nil
}

// checkEvidenceOwner: gambar yang sudah dipakai / di-upload user lain tidak boleh
// dijadikan evidence, supaya reversal tidak menghapus object milik orang lain.
func (s *SubmissionService) checkEvidenceOwner(db *gorm.DB, in CreateInput) error {
	if s.Blob != nil && s.Blob.IsStoredImageURL(in.Evidence) {
		var others int64
		if err := db.Model(&model.SubmissionModel{}).
			Where("submission_evidence = ? AND submission_student_id <> ?", in.Evidence, in.StudentID).
			Count(&others).Error; err != nil {
			return err
		}
		if others > 0 {
			return fmt.Errorf("%w: evidence is already used by another student", helper.ErrForbidden)
		}
	}

	var foreign int64
	q := db.Model(&imageModel.ImageUploadModel{}).
		Where("image_upload_url = ? AND image_upload_uploaded_by <> ?", in.Evidence, in.StudentID)
	if in.SubmittedBy != uuid.Nil {
		q = q.Where("image_upload_uploaded_by <> ?", in.SubmittedBy)
	}
	if err := q.Count(&foreign).Error; err != nil {
		return err
	}
	if foreign > 0 {
		return fmt.Errorf("%w: evidence image belongs to another user", helper.ErrForbidden)
	}
	return nil
}

/* =========================================================
   READ
========================================================= */

func (s *SubmissionService) GetByID(ctx context.Context, id uuid.UUID) (model.SubmissionModel, error) {
	var sub model.SubmissionModel
	if err := s.DB.WithContext(ctx).First(&sub, "submission_id = ?", id).Error; err != nil {
		return sub, notFoundOr(err, "submission")
	}
	return sub, nil
}

func (s *SubmissionService) List(ctx context.Context, f ListFilter) ([]model.SubmissionModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.SubmissionModel{})
	if f.StudentID != nil {
		q = q.Where("submission_student_id = ?", *f.StudentID)
	}
	if f.TaskID != nil {
		q = q.Where("submission_task_id = ?", *f.TaskID)
	}
	if f.Status != "" {
		q = q.Where("submission_status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.SubmissionModel
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Order("submission_submitted_at DESC").Order("submission_id").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

/* =========================================================
   REVIEW (approve / reject)
========================================================= */

func (s *SubmissionService) Review(ctx context.Context, id, reviewerID uuid.UUID, status model.SubmissionStatus, comments *string) (dto.ReviewSubmissionResponse, error) {
	var out dto.ReviewSubmissionResponse
	if status != model.SubmissionStatusApproved && status != model.SubmissionStatusRejected {
		return out, fmt.Errorf("%w: status must be approved or rejected", helper.ErrValidation)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub model.SubmissionModel
		if err := helper.ForUpdate(tx).First(&sub, "submission_id = ?", id).Error; err != nil {
			return notFoundOr(err, "submission")
		}
		if sub.SubmissionStatus != model.SubmissionStatusPending {
			return fmt.Errorf("%w: submission already %s", helper.ErrInvalidState, sub.SubmissionStatus)
		}

		now := time.Now().UTC()
		sub.SubmissionStatus = status
		sub.SubmissionReviewedAt = &now
		sub.SubmissionReviewedBy = &reviewerID
		sub.SubmissionComments = comments
		if err := tx.Model(&sub).Updates(map[string]interface{}{
			"submission_status":      sub.SubmissionStatus,
			"submission_reviewed_at": sub.SubmissionReviewedAt,
			"submission_reviewed_by": sub.SubmissionReviewedBy,
			"submission_comments":    sub.SubmissionComments,
		}).Error; err != nil {
			return err
		}
		out.Submission = dto.FromModel(sub)

		if status != model.SubmissionStatusApproved {
			return nil
		}

		var task taskModel.TaskModel
		if err := tx.First(&task, "task_id = ?", sub.SubmissionTaskID).Error; err != nil {
			return notFoundOr(err, "task")
		}
		var student userModel.UserModel
		if err := helper.ForUpdate(tx).First(&student, "user_id = ?", sub.SubmissionStudentID).Error; err != nil {
			return notFoundOr(err, "student")
		}

		student.UserEcoPoints += task.TaskPoints
		student.UserStreak++

		planting, err := countApprovedPlanting(tx, student.UserID)
		if err != nil {
			return err
		}
		out.BadgesGranted = pointService.GrantBadges(&student, pointService.BadgeFacts{
			EcoPoints:        student.UserEcoPoints,
			Streak:           student.UserStreak,
			ApprovedPlanting: planting,
		})
		if err := saveRewardState(tx, &student); err != nil {
			return err
		}
		if err := pointService.AppendPointLog(tx, student.UserID, pointModel.SourceSubmissionApproved,
			sub.SubmissionID.String(), task.TaskPoints, student.UserEcoPoints); err != nil {
			return err
		}
		out.PointsAwarded = task.TaskPoints

		updated, err := statsService.Apply(tx, statsService.CategoryDelta(string(task.TaskCategory), +1))
		if err != nil {
			return err
		}
		out.GlobalStatsUpdated = updated
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] review submission %s: %v", id, err)
		return dto.ReviewSubmissionResponse{}, err
	}
	if out.BadgesGranted == nil {
		out.BadgesGranted = []string{}
	}

	log.Printf("[SUBMISSION] reviewed id=%s status=%s by=%s points=%d", id, status, reviewerID, out.PointsAwarded)
	return out, nil
}

/* =========================================================
   DELETE + REVERSAL
========================================================= */

// DeleteWithReversal menghapus submission approved dan membatalkan semua efek approval.
// Prasyarat (submission/task/student ada, status approved) dicek dulu; reversal
// berjalan dalam satu transaksi. Hapus object & metadata gambar best-effort setelah commit.
func (s *SubmissionService) DeleteWithReversal(ctx context.Context, id uuid.UUID) (dto.DeleteSubmissionResponse, error) {
	var out dto.DeleteSubmissionResponse
	db := s.DB.WithContext(ctx)

	var sub model.SubmissionModel
	if err := db.First(&sub, "submission_id = ?", id).Error; err != nil {
		return out, notFoundOr(err, "submission")
	}
	if sub.SubmissionStatus != model.SubmissionStatusApproved {
		return out, fmt.Errorf("%w: only approved submissions can be deleted (status=%s)", helper.ErrInvalidState, sub.SubmissionStatus)
	}
	var task taskModel.TaskModel
	if err := db.First(&task, "task_id = ?", sub.SubmissionTaskID).Error; err != nil {
		return out, notFoundOr(err, "task")
	}
	var exists int64
	if err := db.Model(&userModel.UserModel{}).Where("user_id = ?", sub.SubmissionStudentID).Count(&exists).Error; err != nil {
		return out, err
	}
	if exists == 0 {
		return out, fmt.Errorf("%w: student", helper.ErrNotFound)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// status dicek ulang di bawah lock: delete paralel tidak boleh membalik dua kali
		var locked model.SubmissionModel
		if err := helper.ForUpdate(tx).First(&locked, "submission_id = ?", id).Error; err != nil {
			return notFoundOr(err, "submission")
		}
		if locked.SubmissionStatus != model.SubmissionStatusApproved {
			return fmt.Errorf("%w: submission is %s", helper.ErrInvalidState, locked.SubmissionStatus)
		}

		var student userModel.UserModel
		if err := helper.ForUpdate(tx).First(&student, "user_id = ?", locked.SubmissionStudentID).Error; err != nil {
			return notFoundOr(err, "student")
		}

		before := student.UserEcoPoints
		student.UserEcoPoints = max(student.UserEcoPoints-task.TaskPoints, 0)
		student.UserStreak = max(student.UserStreak-1, 0)

		if err := tx.Delete(&model.SubmissionModel{}, "submission_id = ?", id).Error; err != nil {
			return err
		}

		planting, err := countApprovedPlanting(tx, student.UserID)
		if err != nil {
			return err
		}
		out.BadgesRevoked = pointService.RevokeBadges(&student, pointService.BadgeFacts{
			EcoPoints:        student.UserEcoPoints,
			Streak:           student.UserStreak,
			ApprovedPlanting: planting,
		})
		if err := saveRewardState(tx, &student); err != nil {
			return err
		}
		out.StudentUpdated = true

		if deducted := before - student.UserEcoPoints; deducted > 0 {
			if err := pointService.AppendPointLog(tx, student.UserID, pointModel.SourceSubmissionReversed,
				id.String(), -deducted, student.UserEcoPoints); err != nil {
				return err
			}
		}

		updated, err := statsService.Apply(tx, statsService.CategoryDelta(string(task.TaskCategory), -1))
		if err != nil {
			return err
		}
		out.GlobalStatsUpdated = updated
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] reversal submission %s: %v", id, err)
		return dto.DeleteSubmissionResponse{}, err
	}
	out.PointsDeducted = task.TaskPoints
	if out.BadgesRevoked == nil {
		out.BadgesRevoked = []string{}
	}

	out.EvidenceDeleted = s.cleanupEvidence(ctx, sub)

	log.Printf("[SUBMISSION] deleted id=%s student=%s points_deducted=%d", id, sub.SubmissionStudentID, out.PointsDeducted)
	return out, nil
}

// cleanupEvidence: metadata milik submission ini selalu dibuang. Object di OSS
// hanya dihapus kalau URL tidak dipakai submission lain dan tidak tercatat
// sebagai upload user lain. Gagal = log saja.
func (s *SubmissionService) cleanupEvidence(ctx context.Context, sub model.SubmissionModel) bool {
	db := s.DB.WithContext(ctx)
	url := sub.SubmissionEvidence

	if err := db.Where("image_upload_submission_id = ?", sub.SubmissionID).
		Delete(&imageModel.ImageUploadModel{}).Error; err != nil {
		log.Printf("[WARN] delete image_upload metadata for submission %s: %v", sub.SubmissionID, err)
	}

	var refs, foreign int64
	if err := db.Model(&model.SubmissionModel{}).Where("submission_evidence = ?", url).Count(&refs).Error; err != nil {
		log.Printf("[WARN] count evidence refs %s: %v", url, err)
		return false
	}
	if err := db.Model(&imageModel.ImageUploadModel{}).
		Where("image_upload_url = ? AND image_upload_uploaded_by <> ?", url, sub.SubmissionStudentID).
		Count(&foreign).Error; err != nil {
		log.Printf("[WARN] count image_upload owners %s: %v", url, err)
		return false
	}
	if refs > 0 || foreign > 0 {
		log.Printf("[SUBMISSION] evidence %s masih dipakai (refs=%d foreign=%d), object tidak dihapus", url, refs, foreign)
		return false
	}

	deleted := false
	if s.Blob != nil && s.Blob.IsStoredImageURL(url) {
		if err := s.Blob.DeleteByPublicURL(ctx, url); err != nil {
			log.Printf("[WARN] delete evidence object %s: %v", url, err)
		} else {
			deleted = true
		}
	}
	if err := db.Where("image_upload_url = ? AND image_upload_submission_id IS NULL", url).
		Delete(&imageModel.ImageUploadModel{}).Error; err != nil {
		log.Printf("[WARN] delete image_upload metadata %s: %v", url, err)
	}
	return deleted
}

/* =========================================================
   Helpers
========================================================= */

func countApprovedPlanting(tx *gorm.DB, studentID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Table("submissions AS s").
		Joins("JOIN tasks t ON t.task_id = s.submission_task_id").
		Where("s.submission_student_id = ? AND s.submission_status = ? AND t.task_category = ?",
			studentID, model.SubmissionStatusApproved, taskModel.TaskCategoryPlanting).
		Count(&n).Error
	return n, err
}

// saveRewardState: tulis hanya kolom reward, bukan seluruh baris user
func saveRewardState(tx *gorm.DB, u *userModel.UserModel) error {
	return tx.Model(&userModel.UserModel{}).
		Where("user_id = ?", u.UserID).
		Updates(map[string]interface{}{
			"user_eco_points": u.UserEcoPoints,
			"user_streak":     u.UserStreak,
			"user_badges":     u.UserBadges,
			"user_updated_at": time.Now().UTC(),
		}).Error
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", helper.ErrNotFound, what)
	}
	return err
}

// ParseOptionalUUID: "" → nil
func ParseOptionalUUID(s, field string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a valid UUID", helper.ErrValidation, field)
	}
	return &id, nil
}
