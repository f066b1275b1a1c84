package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecoquest_backend/internals/features/progress/stats/dto"
	"ecoquest_backend/internals/features/progress/stats/model"
)

const (
	colSaplings   = "global_stats_total_saplings"
	colWasteSaved = "global_stats_total_waste_saved"
	colStudents   = "global_stats_total_students"
	colTasks      = "global_stats_total_tasks"
	colUpdated    = "global_stats_last_updated"
)

// Satu approval "waste" dihitung 5 unit sampah terselamatkan
const WasteUnitsPerApproval = 5

// Delta: perubahan counter. Nilai negatif di-clamp (tidak pernah di bawah 0,
// dan tidak dikurangi sama sekali kalau counter < |n|).
type Delta struct {
	Saplings   int
	WasteSaved int
	Students   int
	Tasks      int
}

func (d Delta) IsZero() bool {
	return d.Saplings == 0 && d.WasteSaved == 0 && d.Students == 0 && d.Tasks == 0
}

// CategoryDelta: efek approval (sign=+1) atau reversal (sign=-1) per kategori task
func CategoryDelta(category string, sign int) Delta {
	switch category {
	case "planting":
		return Delta{Saplings: sign}
	case "waste":
		return Delta{WasteSaved: sign * WasteUnitsPerApproval}
	default:
		return Delta{}
	}
}

/* =========================
   Read
========================= */

// Get: baris singleton, atau baseline kalau belum pernah dibuat
func Get(db *gorm.DB) (model.GlobalStatsModel, error) {
	var s model.GlobalStatsModel
	err := db.First(&s, "global_stats_id = ?", model.GlobalStatsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DefaultGlobalStats(), nil
	}
	return s, err
}

// EnsureRow membuat baris singleton dari baseline kalau belum ada.
func EnsureRow(tx *gorm.DB) error {
	base := model.DefaultGlobalStats()
	base.LastUpdated = time.Now().UTC()
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&base).Error
}

/* =========================
   Write
========================= */

// Update: merge field yang dikirim ke singleton (upsert), stamp last_updated.
func Update(db *gorm.DB, req dto.UpdateGlobalStatsRequest) (model.GlobalStatsModel, error) {
	var out model.GlobalStatsModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := EnsureRow(tx); err != nil {
			return err
		}
		updates := req.ToMap()
		updates[colUpdated] = time.Now().UTC()
		if err := tx.Model(&model.GlobalStatsModel{}).
			Where("global_stats_id = ?", model.GlobalStatsRowID).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&out, "global_stats_id = ?", model.GlobalStatsRowID).Error
	})
	return out, err
}

// Apply menjalankan delta sebagai satu UPDATE atomik di DB.
// Return true kalau ada kolom yang benar-benar berubah.
func Apply(tx *gorm.DB, d Delta) (bool, error) {
	if d.IsZero() {
		return false, nil
	}
	if err := EnsureRow(tx); err != nil {
		return false, fmt.Errorf("ensure global_stats: %w", err)
	}

	var before model.GlobalStatsModel
	if err := tx.First(&before, "global_stats_id = ?", model.GlobalStatsRowID).Error; err != nil {
		return false, err
	}

	updates := map[string]interface{}{colUpdated: time.Now().UTC()}
	addExpr(updates, colSaplings, d.Saplings)
	addExpr(updates, colWasteSaved, d.WasteSaved)
	addExpr(updates, colStudents, d.Students)
	addExpr(updates, colTasks, d.Tasks)

	if err := tx.Model(&model.GlobalStatsModel{}).
		Where("global_stats_id = ?", model.GlobalStatsRowID).
		Updates(updates).Error; err != nil {
		log.Printf("[ERROR] global_stats apply %+v: %v", d, err)
		return false, err
	}

	var after model.GlobalStatsModel
	if err := tx.First(&after, "global_stats_id = ?", model.GlobalStatsRowID).Error; err != nil {
		return false, err
	}
	changed := before.TotalSaplings != after.TotalSaplings ||
		before.TotalWasteSaved != after.TotalWasteSaved ||
		before.TotalStudents != after.TotalStudents ||
		before.TotalTasks != after.TotalTasks
	return changed, nil
}

func addExpr(m map[string]interface{}, col string, n int) {
	switch {
	case n > 0:
		m[col] = gorm.Expr(col+" + ?", n)
	case n < 0:
		m[col] = gorm.Expr("CASE WHEN "+col+" >= ? THEN "+col+" - ? ELSE "+col+" END", -n, -n)
	}
}

/* =========================
   Overview (live counts)
========================= */

func Overview(ctx context.Context, db *gorm.DB) (dto.StatsOverviewResponse, error) {
	var (
		out    dto.StatsOverviewResponse
		byStat []struct {
			Status string
			N      int64
		}
	)

	g, gctx := errgroup.WithContext(ctx)
	q := func() *gorm.DB { return db.WithContext(gctx) }

	g.Go(func() error {
		s, err := Get(q())
		out.Counters = s
		return err
	})
	g.Go(func() error {
		return q().Table("users").Where("user_role = ?", "student").Count(&out.Students).Error
	})
	g.Go(func() error {
		return q().Table("users").Where("user_role = ?", "teacher").Count(&out.Teachers).Error
	})
	g.Go(func() error {
		return q().Table("tasks").Count(&out.Tasks).Error
	})
	g.Go(func() error {
		return q().Table("schools").Count(&out.Schools).Error
	})
	g.Go(func() error {
		return q().Table("submissions").
			Select("submission_status AS status, COUNT(*) AS n").
			Group("submission_status").
			Scan(&byStat).Error
	})
	g.Go(func() error {
		return approvedByCategory(q(), "planting", &out.ApprovedPlanting)
	})
	g.Go(func() error {
		return approvedByCategory(q(), "waste", &out.ApprovedWaste)
	})
	g.Go(func() error {
		return q().Table("users").Select("COALESCE(SUM(user_eco_points), 0)").Scan(&out.TotalEcoPoints).Error
	})

	if err := g.Wait(); err != nil {
		return out, err
	}

	out.SubmissionsByStatus = map[string]int64{"pending": 0, "approved": 0, "rejected": 0}
	for _, r := range byStat {
		out.SubmissionsByStatus[r.Status] = r.N
	}
	return out, nil
}

func approvedByCategory(db *gorm.DB, category string, dst *int64) error {
	return db.Table("submissions AS s").
		Joins("JOIN tasks t ON t.task_id = s.submission_task_id").
		Where("s.submission_status = ? AND t.task_category = ?", "approved", category).
		Count(dst).Error
}
