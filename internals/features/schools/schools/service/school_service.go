package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/schools/schools/dto"
	"ecoquest_backend/internals/features/schools/schools/model"
	userModel "ecoquest_backend/internals/features/users/user/model"
	helper "ecoquest_backend/internals/helpers"
)

func ListSchools(ctx context.Context, db *gorm.DB, q string, limit, offset int) ([]model.SchoolModel, int64, error) {
	tx := db.WithContext(ctx).Model(&model.SchoolModel{})
	if q != "" {
		tx = tx.Where("LOWER(school_name) LIKE ?", "%"+q+"%")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		tx = tx.Limit(limit).Offset(offset)
	}
	var rows []model.SchoolModel
	if err := tx.Order("school_name").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func GetSchool(ctx context.Context, db *gorm.DB, id uuid.UUID) (model.SchoolModel, error) {
	var s model.SchoolModel
	if err := db.WithContext(ctx).First(&s, "school_id = ?", id).Error; err != nil {
		return s, notFoundOr(err)
	}
	return s, nil
}

func CreateSchool(ctx context.Context, db *gorm.DB, req dto.UpsertSchoolRequest) (model.SchoolModel, error) {
	if err := ensureNameFree(ctx, db, req.SchoolName, uuid.Nil); err != nil {
		return model.SchoolModel{}, err
	}
	s := model.SchoolModel{
		SchoolName:    req.SchoolName,
		SchoolCity:    req.SchoolCity,
		SchoolAddress: req.SchoolAddress,
	}
	if err := db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.SchoolModel{}, helper.ConflictOr(err, "school name already used")
	}
	return s, nil
}

// UpdateSchool: rename ikut mengubah user_school para siswa (relasi lewat nama)
func UpdateSchool(ctx context.Context, db *gorm.DB, id uuid.UUID, req dto.UpsertSchoolRequest) (model.SchoolModel, error) {
	var out model.SchoolModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := helper.ForUpdate(tx).First(&out, "school_id = ?", id).Error; err != nil {
			return notFoundOr(err)
		}
		if err := ensureNameFree(ctx, tx, req.SchoolName, id); err != nil {
			return err
		}
		oldName := out.SchoolName
		if err := tx.Model(&out).Updates(map[string]interface{}{
			"school_name":    req.SchoolName,
			"school_city":    req.SchoolCity,
			"school_address": req.SchoolAddress,
		}).Error; err != nil {
			return helper.ConflictOr(err, "school name already used")
		}
		if oldName != req.SchoolName {
			if err := tx.Model(&userModel.UserModel{}).
				Where("user_school = ?", oldName).
				Update("user_school", req.SchoolName).Error; err != nil {
				return err
			}
		}
		return tx.First(&out, "school_id = ?", id).Error
	})
	return out, err
}

// DeleteSchool: user_school siswa dikosongkan, bukan dihapus
func DeleteSchool(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s model.SchoolModel
		if err := helper.ForUpdate(tx).First(&s, "school_id = ?", id).Error; err != nil {
			return notFoundOr(err)
		}
		if err := tx.Model(&userModel.UserModel{}).
			Where("user_school = ?", s.SchoolName).
			Update("user_school", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SchoolModel{}, "school_id = ?", id).Error
	})
}

func ensureNameFree(ctx context.Context, db *gorm.DB, name string, except uuid.UUID) error {
	var n int64
	q := db.WithContext(ctx).Model(&model.SchoolModel{}).Where("school_name = ?", name)
	if except != uuid.Nil {
		q = q.Where("school_id <> ?", except)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: school name already used", helper.ErrConflict)
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: school", helper.ErrNotFound)
	}
	return err
}
