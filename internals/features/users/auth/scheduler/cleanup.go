package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"ecoquest_backend/internals/configs"
	"ecoquest_backend/internals/features/users/auth/model"
)

// CleanupExpiredBlacklist menghapus token yang sudah lewat masa simpan.
// Mengembalikan jumlah baris yang dihapus.
func CleanupExpiredBlacklist(db *gorm.DB, ttlDays int) (int64, error) {
	deleteBefore := time.Now().UTC().Add(-time.Duration(ttlDays) * 24 * time.Hour)
	res := db.Where("token_blacklist_expired_at < ?", deleteBefore).Delete(&model.TokenBlacklist{})
	return res.RowsAffected, res.Error
}

func runCleanup(db *gorm.DB, ttlDays int) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")
	n, err := CleanupExpiredBlacklist(db.WithContext(ctx), ttlDays)
	switch {
	case err != nil:
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
	case n > 0:
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	default:
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
}

// NewBlacklistCleanupCron: job purge di jadwal cron (5 field atau @daily dsb).
// Run yang masih berjalan tidak ditumpuk.
func NewBlacklistCleanupCron(db *gorm.DB, schedule string, ttlDays int) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(schedule, func() { runCleanup(db, ttlDays) }); err != nil {
		return nil, err
	}
	return c, nil
}

// StartBlacklistCleanupScheduler: sekali saat boot, lalu ikut TOKEN_BLACKLIST_CLEANUP_CRON
// sampai ctx selesai.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB) {
	ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)
	schedule := configs.GetEnv("TOKEN_BLACKLIST_CLEANUP_CRON", "@daily")

	c, err := NewBlacklistCleanupCron(db, schedule, ttlDays)
	if err != nil {
		log.Printf("[CLEANUP ERROR] jadwal cron %q tidak valid: %v", schedule, err)
		return
	}
	go runCleanup(db, ttlDays)
	c.Start()
	log.Printf("[CLEANUP] scheduler started schedule=%q ttl=%dd", schedule, ttlDays)

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		log.Println("[CLEANUP] scheduler stopped")
	}()
}
