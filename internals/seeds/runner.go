package seeds

import (
	"log"

	"gorm.io/gorm"

	schools "ecoquest_backend/internals/seeds/schools/schools"
	tasks "ecoquest_backend/internals/seeds/tasks/tasks"
	users "ecoquest_backend/internals/seeds/users/auth"
)

// RunAllSeeds: idempotent, data yang sudah ada dilewati
func RunAllSeeds(db *gorm.DB) {
	log.Println("🌱 Running seeds...")

	//* Schools dulu (user_school merujuk nama sekolah)
	schools.SeedSchoolsFromJSON(db, "internals/seeds/schools/schools/data_schools.json")

	//* User
	users.SeedUsersFromJSON(db, "internals/seeds/users/auth/data_users.json")

	//* Tasks
	tasks.SeedTasksFromJSON(db, "internals/seeds/tasks/tasks/data_tasks.json")

	log.Println("🌱 Seeds selesai")
}
