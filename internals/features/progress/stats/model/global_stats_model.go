package model

import "time"

// Satu-satunya baris di tabel global_stats
const GlobalStatsRowID uint = 1

type GlobalStatsModel struct {
	GlobalStatsID   uint      `gorm:"primaryKey;autoIncrement:false;column:global_stats_id" json:"-"`
	TotalSaplings   int       `gorm:"not null;default:0;column:global_stats_total_saplings" json:"total_saplings"`
	TotalWasteSaved int       `gorm:"not null;default:0;column:global_stats_total_waste_saved" json:"total_waste_saved"`
	TotalStudents   int       `gorm:"not null;default:0;column:global_stats_total_students" json:"total_students"`
	TotalTasks      int       `gorm:"not null;default:0;column:global_stats_total_tasks" json:"total_tasks"`
	LastUpdated     time.Time `gorm:"column:global_stats_last_updated" json:"last_updated"`
}

func (GlobalStatsModel) TableName() string { return "global_stats" }

// Baseline yang ditampilkan sebelum ada baris sama sekali
func DefaultGlobalStats() GlobalStatsModel {
	return GlobalStatsModel{
		GlobalStatsID:   GlobalStatsRowID,
		TotalSaplings:   1250,
		TotalWasteSaved: 3400,
		TotalStudents:   850,
		TotalTasks:      45,
	}
}
