package school

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/schools/schools/model"
)

type SchoolSeed struct {
	SchoolName    string  `json:"school_name"`
	SchoolCity    *string `json:"school_city"`
	SchoolAddress *string `json:"school_address"`
}

func SeedSchoolsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}

	var schools []SchoolSeed
	if err := sonic.Unmarshal(file, &schools); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}

	for _, s := range schools {
		var n int64
		db.Model(&model.SchoolModel{}).Where("school_name = ?", s.SchoolName).Count(&n)
		if n > 0 {
			log.Printf("ℹ️ School %s sudah ada, lewati...", s.SchoolName)
			continue
		}

		row := model.SchoolModel{
			SchoolName:    s.SchoolName,
			SchoolCity:    s.SchoolCity,
			SchoolAddress: s.SchoolAddress,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ Gagal insert school %s: %v", s.SchoolName, err)
		} else {
			log.Printf("✅ Berhasil insert school %s", s.SchoolName)
		}
	}
}
