package user

import (
	"context"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"ecoquest_backend/internals/features/users/user/model"
	userService "ecoquest_backend/internals/features/users/user/service"
)

type UserSeed struct {
	UserName string  `json:"user_name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	School   *string `json:"school"`
}

func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}

	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}

	for _, data := range inputs {
		var n int64
		db.Model(&model.UserModel{}).Where("user_email = ?", data.Email).Count(&n)
		if n > 0 {
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", data.Email)
			continue
		}

		// 🔐 Hash password sebelum disimpan
		hashedPassword, err := userService.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", data.Email, err)
			continue
		}

		role := model.UserRole(data.Role)
		if !role.Valid() {
			role = model.UserRoleStudent
		}
		newUser := model.UserModel{
			UserName:     data.UserName,
			UserEmail:    data.Email,
			UserPassword: &hashedPassword,
			UserRole:     role,
			UserSchool:   data.School,
			UserIsActive: true,
		}
		if err := userService.CreateUser(context.Background(), db, &newUser); err != nil {
			log.Printf("❌ Gagal membuat user '%s': %v", data.Email, err)
			continue
		}
		log.Printf("✅ User '%s' (%s) berhasil ditambahkan", data.Email, role)
	}
}
