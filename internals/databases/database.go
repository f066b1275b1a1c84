package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ecoquest_backend/internals/configs"
	imageModel "ecoquest_backend/internals/features/eco/image_uploads/model"
	submissionModel "ecoquest_backend/internals/features/eco/submissions/model"
	taskModel "ecoquest_backend/internals/features/eco/tasks/model"
	pointModel "ecoquest_backend/internals/features/progress/points/model"
	statsModel "ecoquest_backend/internals/features/progress/stats/model"
	schoolModel "ecoquest_backend/internals/features/schools/schools/model"
	authModel "ecoquest_backend/internals/features/users/auth/model"
	userModel "ecoquest_backend/internals/features/users/user/model"
)

var DB *gorm.DB

// Models: urutan AutoMigrate (dipakai juga oleh test helper)
func Models() []interface{} {
	return []interface{}{
		&userModel.UserModel{},
		&schoolModel.SchoolModel{},
		&taskModel.TaskModel{},
		&submissionModel.SubmissionModel{},
		&imageModel.ImageUploadModel{},
		&statsModel.GlobalStatsModel{},
		&pointModel.UserPointLog{},
		&authModel.TokenBlacklist{},
	}
}

func ConnectDB() {
	driver := strings.ToLower(configs.GetEnv("DB_DRIVER", "postgres"))

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		path := configs.GetEnv("SQLITE_PATH", "ecoquest.db")
		log.Printf("🔌 Koneksi ke SQLite (%s)...", path)
		// foreign_keys + busy_timeout supaya tx review tidak langsung gagal saat lock
		dialector = sqlite.Open(path + "?_foreign_keys=on&_busy_timeout=5000")
	default:
		log.Println("🔌 Koneksi ke PostgreSQL...")
		dsn := configs.GetEnv("DATABASE_URL")
		if dsn == "" {
			dsn = fmt.Sprintf(
				"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=ecoquest&options=-c statement_timeout=3000",
				configs.GetEnv("DB_USER"),
				configs.GetEnv("DB_PASSWORD"),
				configs.GetEnv("DB_HOST", "localhost"),
				configs.GetEnv("DB_PORT", "5432"),
				configs.GetEnv("DB_NAME", "ecoquest"),
				configs.GetEnv("DB_SSLMODE", "disable"),
			)
		}
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: configs.NewGormLogger()})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Printf("✅ DB connected (%s).", driver)

	if configs.GetEnvBool("DB_AUTOMIGRATE", true) {
		if err := AutoMigrate(DB); err != nil {
			log.Fatalf("❌ AutoMigrate gagal: %v", err)
		}
		log.Println("✅ AutoMigrate selesai.")
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	if DB.Dialector.Name() == "sqlite" {
		// satu writer saja untuk sqlite
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
			return
		}
		var n int64
		DB.Table("global_stats").Count(&n)
	}()
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
