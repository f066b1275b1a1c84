package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolRoute "ecoquest_backend/internals/features/schools/schools/route"
	userRoute "ecoquest_backend/internals/features/users/user/route"
)

func UserPublicRoutes(r fiber.Router, db *gorm.DB) {
	userRoute.UserPublicRoutes(r, db)
	schoolRoute.SchoolPublicRoutes(r, db)
}

func UserUserRoutes(r fiber.Router, db *gorm.DB) {
	userRoute.UserUserRoutes(r, db)
}

func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	userRoute.UserAdminRoutes(r, db)
	schoolRoute.SchoolAdminRoutes(r, db)
}
