package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/progress/lessons/dto"
	pointModel "ecoquest_backend/internals/features/progress/points/model"
	pointService "ecoquest_backend/internals/features/progress/points/service"
	userModel "ecoquest_backend/internals/features/users/user/model"
	helper "ecoquest_backend/internals/helpers"
)

// CompleteLesson menandai lesson selesai. Poin hanya diberikan sekali per lesson;
// entri progress selalu ditulis ulang dengan timestamp baru.
func CompleteLesson(ctx context.Context, db *gorm.DB, userID uuid.UUID, lessonID string, points int) (dto.CompleteLessonResponse, error) {
	var out dto.CompleteLessonResponse
	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return out, fmt.Errorf("%w: lesson_id is required", helper.ErrValidation)
	}
	if points < 0 {
		return out, fmt.Errorf("%w: points must not be negative", helper.ErrValidation)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u userModel.UserModel
		if err := helper.ForUpdate(tx).First(&u, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user", helper.ErrNotFound)
			}
			return err
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{"user_updated_at": now}

		out.AlreadyCompleted = u.HasCompletedLesson(lessonID)
		if !out.AlreadyCompleted {
			completed := append(datatypes.JSONSlice[string]{}, u.UserCompletedLessons...)
			updates["user_completed_lessons"] = append(completed, lessonID)
			u.UserEcoPoints += points
			updates["user_eco_points"] = u.UserEcoPoints
			out.PointsAwarded = points
		}

		progress := u.LessonProgressMap()
		entry := userModel.LessonProgress{
			Progress:    100,
			Completed:   true,
			CompletedAt: &now,
			UpdatedAt:   now,
		}
		progress[lessonID] = entry
		updates["user_lesson_progress"] = datatypes.NewJSONType(progress)

		if err := tx.Model(&userModel.UserModel{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
			return err
		}
		if out.PointsAwarded > 0 {
			if err := pointService.AppendPointLog(tx, userID, pointModel.SourceLessonCompleted, lessonID, points, u.UserEcoPoints); err != nil {
				return err
			}
		}

		out.LessonID = lessonID
		out.EcoPoints = u.UserEcoPoints
		out.Progress = entry
		out.CompletedAt = now
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] complete lesson user=%s lesson=%s: %v", userID, lessonID, err)
		return dto.CompleteLessonResponse{}, err
	}

	log.Printf("[LESSON] user=%s lesson=%s awarded=%d", userID, lessonID, out.PointsAwarded)
	return out, nil
}
