package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	submissionModel "ecoquest_backend/internals/features/eco/submissions/model"
	pointModel "ecoquest_backend/internals/features/progress/points/model"
	statsService "ecoquest_backend/internals/features/progress/stats/service"
	"ecoquest_backend/internals/features/users/user/dto"
	"ecoquest_backend/internals/features/users/user/model"
	helper "ecoquest_backend/internals/helpers"
)

type ListFilter struct {
	Role   string
	School string
	Q      string
	Limit  int
	Offset int
}

func HashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPasswordHash(hash, raw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
}

/* =========================
   CREATE
========================= */

// CreateUser menyimpan user baru. Kalau role student, total_students ikut naik
// di transaksi yang sama.
func CreateUser(ctx context.Context, db *gorm.DB, u *model.UserModel) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createUserTx(tx, u)
	})
}

func createUserTx(tx *gorm.DB, u *model.UserModel) error {
	var dup int64
	if err := tx.Model(&model.UserModel{}).Where("user_email = ?", strings.ToLower(strings.TrimSpace(u.UserEmail))).Count(&dup).Error; err != nil {
		return err
	}
	if dup > 0 {
		return fmt.Errorf("%w: email already registered", helper.ErrConflict)
	}
	// cek di atas bisa kalah balapan; unique index tetap jadi penentu
	if err := tx.Create(u).Error; err != nil {
		return helper.ConflictOr(err, "email already registered")
	}
	if u.UserRole == model.UserRoleStudent {
		if _, err := statsService.Apply(tx, statsService.Delta{Students: 1}); err != nil {
			return err
		}
	}
	return nil
}

// UpsertUser: create, atau replace seluruh field yang dikirim kalau user_id sudah ada.
// Return created=true kalau baris baru.
func UpsertUser(ctx context.Context, db *gorm.DB, req dto.UpsertUserRequest) (model.UserModel, bool, error) {
	var (
		out     model.UserModel
		created bool
	)
	role := model.UserRole(req.Role)
	if role == "" {
		role = model.UserRoleStudent
	}
	if !role.Valid() {
		return out, false, fmt.Errorf("%w: invalid role", helper.ErrValidation)
	}

	var hashed *string
	if req.Password != nil && *req.Password != "" {
		h, err := HashPassword(*req.Password)
		if err != nil {
			return out, false, err
		}
		hashed = &h
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.UserModel
		found := false
		if req.UserID != "" {
			id, err := uuid.Parse(req.UserID)
			if err != nil {
				return fmt.Errorf("%w: user_id must be a valid UUID", helper.ErrValidation)
			}
			err = helper.ForUpdate(tx).First(&existing, "user_id = ?", id).Error
			switch {
			case err == nil:
				found = true
			case errors.Is(err, gorm.ErrRecordNotFound):
				out.UserID = id
			default:
				return err
			}
		}

		if !found {
			out.UserEmail = req.Email
			out.UserName = req.Name
			out.UserRole = role
			out.UserSchool = req.School
			out.UserPassword = hashed
			applyRewardFields(&out, req)
			out.UserIsActive = true
			if err := createUserTx(tx, &out); err != nil {
				return err
			}
			if req.IsActive != nil && !*req.IsActive {
				// default:true di kolom menimpa false saat create
				if err := tx.Model(&out).Update("user_is_active", false).Error; err != nil {
					return err
				}
				out.UserIsActive = false
			}
			created = true
			return nil
		}

		// email baru tidak boleh milik user lain
		if !strings.EqualFold(existing.UserEmail, req.Email) {
			var dup int64
			if err := tx.Model(&model.UserModel{}).
				Where("user_email = ? AND user_id <> ?", req.Email, existing.UserID).
				Count(&dup).Error; err != nil {
				return err
			}
			if dup > 0 {
				return fmt.Errorf("%w: email already registered", helper.ErrConflict)
			}
		}

		wasStudent := existing.UserRole == model.UserRoleStudent
		existing.UserEmail = req.Email
		existing.UserName = req.Name
		existing.UserRole = role
		existing.UserSchool = req.School
		if hashed != nil {
			existing.UserPassword = hashed
		}
		if req.IsActive != nil {
			existing.UserIsActive = *req.IsActive
		}
		applyRewardFields(&existing, req)

		if err := tx.Model(&model.UserModel{}).Where("user_id = ?", existing.UserID).Updates(map[string]interface{}{
			"user_email":      existing.UserEmail,
			"user_name":       existing.UserName,
			"user_role":       existing.UserRole,
			"user_school":     existing.UserSchool,
			"user_password":   existing.UserPassword,
			"user_eco_points": existing.UserEcoPoints,
			"user_streak":     existing.UserStreak,
			"user_badges":     existing.UserBadges,
			"user_is_active":  existing.UserIsActive,
		}).Error; err != nil {
			return helper.ConflictOr(err, "email already registered")
		}

		isStudent := existing.UserRole == model.UserRoleStudent
		if wasStudent != isStudent {
			d := statsService.Delta{Students: 1}
			if wasStudent {
				d.Students = -1
			}
			if _, err := statsService.Apply(tx, d); err != nil {
				return err
			}
		}
		out = existing
		return nil
	})
	if err != nil {
		return model.UserModel{}, false, err
	}
	return out, created, nil
}

func applyRewardFields(u *model.UserModel, req dto.UpsertUserRequest) {
	if req.EcoPoints != nil {
		u.UserEcoPoints = max(*req.EcoPoints, 0)
	}
	if req.Streak != nil {
		u.UserStreak = max(*req.Streak, 0)
	}
	if req.Badges != nil {
		u.UserBadges = datatypes.JSONSlice[string](dedupe(req.Badges))
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

/* =========================
   READ
========================= */

func GetUserByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (model.UserModel, error) {
	var u model.UserModel
	if err := db.WithContext(ctx).First(&u, "user_id = ?", id).Error; err != nil {
		return u, notFoundOr(err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (model.UserModel, error) {
	var u model.UserModel
	email = strings.ToLower(strings.TrimSpace(email))
	if err := db.WithContext(ctx).First(&u, "user_email = ?", email).Error; err != nil {
		return u, notFoundOr(err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, db *gorm.DB, f ListFilter) ([]model.UserModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.UserModel{})
	if f.Role != "" {
		q = q.Where("user_role = ?", f.Role)
	}
	if f.School != "" {
		q = q.Where("user_school = ?", f.School)
	}
	if f.Q != "" {
		like := "%" + strings.ToLower(f.Q) + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(user_email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.UserModel
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Order("user_created_at DESC").Order("user_id").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// StudentsBySchool: relasi user → school lewat nama sekolah
func StudentsBySchool(ctx context.Context, db *gorm.DB, schoolName string) ([]model.UserModel, error) {
	var rows []model.UserModel
	err := db.WithContext(ctx).
		Where("user_school = ? AND user_role = ?", schoolName, model.UserRoleStudent).
		Order("user_eco_points DESC").Order("user_name").
		Find(&rows).Error
	return rows, err
}

func Leaderboard(ctx context.Context, db *gorm.DB, school string, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	q := db.WithContext(ctx).
		Where("user_role = ? AND user_is_active = ?", model.UserRoleStudent, true)
	if school != "" {
		q = q.Where("user_school = ?", school)
	}

	var rows []model.UserModel
	if err := q.Order("user_eco_points DESC").Order("user_streak DESC").Order("user_name").
		Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]dto.LeaderboardEntry, 0, len(rows))
	for i, u := range rows {
		badges := []string(u.UserBadges)
		if badges == nil {
			badges = []string{}
		}
		out = append(out, dto.LeaderboardEntry{
			Rank:          i + 1,
			UserID:        u.UserID,
			UserName:      u.UserName,
			UserSchool:    u.UserSchool,
			UserEcoPoints: u.UserEcoPoints,
			UserBadges:    badges,
			UserStreak:    u.UserStreak,
		})
	}
	return out, nil
}

/* =========================
   DELETE
========================= */

// DeleteUser menghapus user beserta submission & riwayat poinnya.
// Counter global dari submission yang sudah approved tidak dibalik.
func DeleteUser(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.UserModel
		if err := helper.ForUpdate(tx).First(&u, "user_id = ?", id).Error; err != nil {
			return notFoundOr(err)
		}
		if err := tx.Where("submission_student_id = ?", id).Delete(&submissionModel.SubmissionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_point_log_user_id = ?", id).Delete(&pointModel.UserPointLog{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.UserModel{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		if u.UserRole == model.UserRoleStudent {
			if _, err := statsService.Apply(tx, statsService.Delta{Students: -1}); err != nil {
				return err
			}
		}
		log.Printf("[USER] deleted id=%s role=%s", id, u.UserRole)
		return nil
	})
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user", helper.ErrNotFound)
	}
	return err
}
