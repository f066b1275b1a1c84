package tasks

import (
	"context"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/eco/tasks/model"
	taskService "ecoquest_backend/internals/features/eco/tasks/service"
)

type TaskSeed struct {
	TaskTitle       string `json:"task_title"`
	TaskDescription string `json:"task_description"`
	TaskCategory    string `json:"task_category"`
	TaskPoints      int    `json:"task_points"`
}

// SeedTasksFromJSON lewat service supaya total_tasks ikut bertambah
func SeedTasksFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file task:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}

	var inputs []TaskSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}

	for _, in := range inputs {
		var n int64
		db.Model(&model.TaskModel{}).Where("task_title = ?", in.TaskTitle).Count(&n)
		if n > 0 {
			log.Printf("ℹ️ Task '%s' sudah ada, dilewati.", in.TaskTitle)
			continue
		}

		t := model.TaskModel{
			TaskTitle:       in.TaskTitle,
			TaskDescription: in.TaskDescription,
			TaskCategory:    model.TaskCategory(in.TaskCategory),
			TaskPoints:      in.TaskPoints,
		}
		if err := taskService.CreateTask(context.Background(), db, &t); err != nil {
			log.Printf("❌ Gagal insert task '%s': %v", in.TaskTitle, err)
			continue
		}
		log.Printf("✅ Task '%s' (%s, %d poin) ditambahkan", t.TaskTitle, t.TaskCategory, t.TaskPoints)
	}
}
