package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/eco/image_uploads/model"
	helper "ecoquest_backend/internals/helpers"
	helperOSS "ecoquest_backend/internals/helpers/oss"
)

// RecordUpload menyimpan metadata object yang baru di-upload ke OSS.
func RecordUpload(ctx context.Context, db *gorm.DB, obj helperOSS.UploadedObject, filename string, uploader uuid.UUID, taskID *uuid.UUID) (model.ImageUploadModel, error) {
	row := model.ImageUploadModel{
		ImageUploadURL:         obj.URL,
		ImageUploadObjectKey:   obj.Key,
		ImageUploadFilename:    filename,
		ImageUploadSize:        obj.Size,
		ImageUploadContentType: obj.ContentType,
		ImageUploadUploadedBy:  uploader,
		ImageUploadTaskID:      taskID,
		ImageUploadIsPublic:    true,
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.ImageUploadModel{}, err
	}
	return row, nil
}

type ListFilter struct {
	UploadedBy   *uuid.UUID
	TaskID       *uuid.UUID
	SubmissionID *uuid.UUID
	Limit        int
	Offset       int
}

func List(ctx context.Context, db *gorm.DB, f ListFilter) ([]model.ImageUploadModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.ImageUploadModel{})
	if f.UploadedBy != nil {
		q = q.Where("image_upload_uploaded_by = ?", *f.UploadedBy)
	}
	if f.TaskID != nil {
		q = q.Where("image_upload_task_id = ?", *f.TaskID)
	}
	if f.SubmissionID != nil {
		q = q.Where("image_upload_submission_id = ?", *f.SubmissionID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var rows []model.ImageUploadModel
	if err := q.Order("image_upload_created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func GetByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (model.ImageUploadModel, error) {
	var row model.ImageUploadModel
	if err := db.WithContext(ctx).First(&row, "image_upload_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, fmt.Errorf("%w: image upload", helper.ErrNotFound)
		}
		return row, err
	}
	return row, nil
}

// Delete: hapus object di OSS lalu metadata. Gambar yang sudah jadi evidence
// submission tidak boleh dihapus dari sini.
func Delete(ctx context.Context, db *gorm.DB, blob helperOSS.BlobService, row model.ImageUploadModel) error {
	if row.ImageUploadSubmissionID != nil {
		return fmt.Errorf("%w: image is evidence of submission %s", helper.ErrConflict, row.ImageUploadSubmissionID)
	}
	if blob != nil {
		if err := blob.DeleteByPublicURL(ctx, row.ImageUploadURL); err != nil {
			log.Printf("[WARN] delete object %s: %v", row.ImageUploadObjectKey, err)
			return fmt.Errorf("%w: delete object failed", helper.ErrUpstream)
		}
	}
	return db.WithContext(ctx).Delete(&model.ImageUploadModel{}, "image_upload_id = ?", row.ImageUploadID).Error
}

func DeleteByURL(ctx context.Context, db *gorm.DB, url string) error {
	return db.WithContext(ctx).Where("image_upload_url = ?", url).Delete(&model.ImageUploadModel{}).Error
}
