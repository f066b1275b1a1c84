package dto

// Merge update: field nil = tidak diubah
type UpdateGlobalStatsRequest struct {
	TotalSaplings   *int `json:"total_saplings" validate:"omitempty,min=0"`
	TotalWasteSaved *int `json:"total_waste_saved" validate:"omitempty,min=0"`
	TotalStudents   *int `json:"total_students" validate:"omitempty,min=0"`
	TotalTasks      *int `json:"total_tasks" validate:"omitempty,min=0"`
}

func (r UpdateGlobalStatsRequest) ToMap() map[string]interface{} {
	m := map[string]interface{}{}
	if r.TotalSaplings != nil {
		m["global_stats_total_saplings"] = *r.TotalSaplings
	}
	if r.TotalWasteSaved != nil {
		m["global_stats_total_waste_saved"] = *r.TotalWasteSaved
	}
	if r.TotalStudents != nil {
		m["global_stats_total_students"] = *r.TotalStudents
	}
	if r.TotalTasks != nil {
		m["global_stats_total_tasks"] = *r.TotalTasks
	}
	return m
}

// Hitungan live dari tabel (bukan counter)
type StatsOverviewResponse struct {
	Counters            interface{}      `json:"counters"`
	Students            int64            `json:"students"`
	Teachers            int64            `json:"teachers"`
	Tasks               int64            `json:"tasks"`
	SubmissionsByStatus map[string]int64 `json:"submissions_by_status"`
	ApprovedPlanting    int64            `json:"approved_planting"`
	ApprovedWaste       int64            `json:"approved_waste"`
	TotalEcoPoints      int64            `json:"total_eco_points"`
	Schools             int64            `json:"schools"`
}
