package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecoquest_backend/internals/configs"
	"ecoquest_backend/internals/constants"
	helperOSS "ecoquest_backend/internals/helpers/oss"
	authMiddleware "ecoquest_backend/internals/middlewares/auth"
	routeDetails "ecoquest_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes: blob boleh nil (OSS tidak dikonfigurasi) → route upload jawab 503.
func SetupRoutes(app *fiber.App, db *gorm.DB, blob helperOSS.BlobService) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	jwt := authMiddleware.AuthJWT(db, authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u", jwt)

	log.Println("[INFO] Setting up TEACHER group (Auth + RoleCheck)...")
	teacher := app.Group("/api/t", jwt,
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("review & tugas"), constants.TeacherAndAbove...),
	)

	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a", jwt,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("administrasi"), constants.AdminOnly...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserPublicRoutes(public, db)
	routeDetails.UserUserRoutes(private, db)
	routeDetails.UserAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Eco routes...")
	routeDetails.EcoUserRoutes(private, db, blob)
	routeDetails.EcoTeacherRoutes(teacher, db, blob)

	log.Println("[INFO] Mounting Progress routes...")
	routeDetails.ProgressPublicRoutes(public, db)
	routeDetails.ProgressUserRoutes(private, db)
	routeDetails.ProgressAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Utils routes...")
	routeDetails.UtilsAdminRoutes(admin, db, blob)
}
