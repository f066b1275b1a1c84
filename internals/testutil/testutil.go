package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"ecoquest_backend/internals/configs"
	database "ecoquest_backend/internals/databases"
	submissionModel "ecoquest_backend/internals/features/eco/submissions/model"
	taskModel "ecoquest_backend/internals/features/eco/tasks/model"
	statsModel "ecoquest_backend/internals/features/progress/stats/model"
	authService "ecoquest_backend/internals/features/users/auth/service"
	userModel "ecoquest_backend/internals/features/users/user/model"
)

const JWTSecret = "test-secret"

var dbSeq atomic.Int64

// OpenTestDB: sqlite in-memory per test, skema sama dengan production.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	configs.JWTSecret = JWTSecret
	configs.JWTTTL = time.Hour
	return db
}

/* ===================== fixtures ===================== */

func CreateUser(t *testing.T, db *gorm.DB, role userModel.UserRole, points int, badges ...string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		UserEmail:     fmt.Sprintf("%s-%s@test.local", role, uuid.NewString()[:8]),
		UserName:      "User " + string(role),
		UserRole:      role,
		UserEcoPoints: points,
		UserBadges:    append([]string{}, badges...),
		UserIsActive:  true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func CreateTask(t *testing.T, db *gorm.DB, category taskModel.TaskCategory, points int) taskModel.TaskModel {
	t.Helper()
	task := taskModel.TaskModel{
		TaskTitle:    "Task " + string(category),
		TaskCategory: category,
		TaskPoints:   points,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func CreateSubmission(t *testing.T, db *gorm.DB, student userModel.UserModel, task taskModel.TaskModel, status submissionModel.SubmissionStatus, evidence string) submissionModel.SubmissionModel {
	t.Helper()
	sub := submissionModel.SubmissionModel{
		SubmissionTaskID:       task.TaskID,
		SubmissionStudentID:    student.UserID,
		SubmissionEvidence:     evidence,
		SubmissionLocation:     "Bandung",
		SubmissionStatus:       status,
		SubmissionMLConfidence: 80,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("create submission: %v", err)
	}
	return sub
}

func SetStats(t *testing.T, db *gorm.DB, saplings, waste, students, tasks int) {
	t.Helper()
	s := statsModel.GlobalStatsModel{
		GlobalStatsID:   statsModel.GlobalStatsRowID,
		TotalSaplings:   saplings,
		TotalWasteSaved: waste,
		TotalStudents:   students,
		TotalTasks:      tasks,
		LastUpdated:     time.Now().UTC(),
	}
	if err := db.Save(&s).Error; err != nil {
		t.Fatalf("set stats: %v", err)
	}
}

func GetStats(t *testing.T, db *gorm.DB) statsModel.GlobalStatsModel {
	t.Helper()
	var s statsModel.GlobalStatsModel
	if err := db.First(&s, "global_stats_id = ?", statsModel.GlobalStatsRowID).Error; err != nil {
		t.Fatalf("get stats: %v", err)
	}
	return s
}

func ReloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) userModel.UserModel {
	t.Helper()
	var u userModel.UserModel
	if err := db.First(&u, "user_id = ?", id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return u
}

// BearerFor: access token asli (HS256) untuk request app.Test
func BearerFor(t *testing.T, u userModel.UserModel) string {
	t.Helper()
	tok, _, err := authService.IssueAccessToken(u, JWTSecret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + tok
}
