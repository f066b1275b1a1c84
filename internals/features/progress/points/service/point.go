package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pointModel "ecoquest_backend/internals/features/progress/points/model"
)

// AppendPointLog menulis satu baris ledger. Dipanggil dengan tx yang sama
// dengan perubahan user_eco_points supaya ledger dan saldo selalu sejalan.
func AppendPointLog(tx *gorm.DB, userID uuid.UUID, sourceType int, sourceRef string, points, balance int) error {
	entry := pointModel.UserPointLog{
		UserPointLogUserID:     userID,
		UserPointLogPoints:     points,
		UserPointLogSourceType: sourceType,
		UserPointLogSourceRef:  sourceRef,
		UserPointLogBalance:    balance,
		CreatedAt:              time.Now().UTC(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		log.Println("[ERROR] Failed to insert user_point_log:", err)
		return err
	}
	return nil
}

// ListPointLogs: riwayat poin user, terbaru dulu
func ListPointLogs(db *gorm.DB, userID uuid.UUID, limit, offset int) ([]pointModel.UserPointLog, int64, error) {
	var (
		logs  []pointModel.UserPointLog
		total int64
	)
	q := db.Model(&pointModel.UserPointLog{}).Where("user_point_log_user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at DESC").Order("user_point_log_id DESC").
		Limit(limit).Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
