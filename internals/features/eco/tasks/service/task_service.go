package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	submissionModel "ecoquest_backend/internals/features/eco/submissions/model"
	"ecoquest_backend/internals/features/eco/tasks/dto"
	"ecoquest_backend/internals/features/eco/tasks/model"
	statsService "ecoquest_backend/internals/features/progress/stats/service"
	helper "ecoquest_backend/internals/helpers"
)

// CreateTask: insert + total_tasks +1 dalam satu transaksi
func CreateTask(ctx context.Context, db *gorm.DB, t *model.TaskModel) error {
	if !t.TaskCategory.Valid() {
		return fmt.Errorf("%w: invalid task_category %q", helper.ErrValidation, t.TaskCategory)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		_, err := statsService.Apply(tx, statsService.Delta{Tasks: 1})
		return err
	})
}

func GetTask(ctx context.Context, db *gorm.DB, id uuid.UUID) (model.TaskModel, error) {
	var t model.TaskModel
	if err := db.WithContext(ctx).First(&t, "task_id = ?", id).Error; err != nil {
		return t, notFoundOr(err)
	}
	return t, nil
}

func ListTasks(ctx context.Context, db *gorm.DB, category string, limit, offset int) ([]model.TaskModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.TaskModel{})
	if category != "" {
		q = q.Where("task_category = ?", category)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var rows []model.TaskModel
	if err := q.Order("task_created_at DESC").Order("task_id").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateTask: perubahan poin tidak berlaku surut ke submission yang sudah approved
func UpdateTask(ctx context.Context, db *gorm.DB, id uuid.UUID, req dto.UpdateTaskRequest) (model.TaskModel, error) {
	updates := req.ToMap()
	t, err := GetTask(ctx, db, id)
	if err != nil {
		return t, err
	}
	if len(updates) == 0 {
		return t, nil
	}
	if err := db.WithContext(ctx).Model(&t).Updates(updates).Error; err != nil {
		return t, err
	}
	return GetTask(ctx, db, id)
}

// DeleteTask: ditolak kalau masih ada submission (reversal butuh task-nya)
func DeleteTask(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t model.TaskModel
		if err := helper.ForUpdate(tx).First(&t, "task_id = ?", id).Error; err != nil {
			return notFoundOr(err)
		}
		var n int64
		if err := tx.Model(&submissionModel.SubmissionModel{}).Where("submission_task_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: task still has %d submissions", helper.ErrConflict, n)
		}
		if err := tx.Delete(&model.TaskModel{}, "task_id = ?", id).Error; err != nil {
			return err
		}
		if _, err := statsService.Apply(tx, statsService.Delta{Tasks: -1}); err != nil {
			return err
		}
		log.Printf("[TASK] deleted id=%s", id)
		return nil
	})
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: task", helper.ErrNotFound)
	}
	return err
}
