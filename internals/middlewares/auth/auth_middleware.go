package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecoquest_backend/internals/configs"
	authRepo "ecoquest_backend/internals/features/users/auth/repository"
	authService "ecoquest_backend/internals/features/users/auth/service"
	helperAuth "ecoquest_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool
}

// AuthJWT: verifikasi access token lalu isi Locals user_id / userRole / user_email.
func AuthJWT(db *gorm.DB, opts AuthJWTOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c, opts.AllowCookieFallback)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secret := opts.Secret
		if secret == "" {
			secret = configs.JWTSecret
		}
		if secret == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		// Cek blacklist (token yang sudah logout)
		blacklisted, err := helperAuth.IsBlacklisted(c.UserContext(), db, tokenString, secret)
		if err != nil {
			log.Println("[ERROR] DB error saat cek blacklist:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if blacklisted {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		}

		claims, err := authService.ParseAccessToken(tokenString, secret)
		if err != nil {
			log.Println("[WARN] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or expired token")
		}

		userID, err := uuid.Parse(strings.TrimSpace(claims.ID))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		active, role, err := authRepo.UserAuthState(db.WithContext(c.UserContext()), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !active {
			return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		}

		c.Locals(helperAuth.LocUserID, userID.String())
		// role dari DB, bukan dari claim: user yang diturunkan langsung kehilangan akses
		c.Locals(helperAuth.LocUserRole, strings.ToLower(role))
		c.Locals(helperAuth.LocUserEmail, claims.Email)
		c.Locals(helperAuth.LocRawToken, tokenString)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx, allowCookie bool) (string, error) {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", errors.New("Unauthorized - Invalid token format")
		}
		return strings.TrimSpace(parts[1]), nil
	}
	if allowCookie {
		if tok := strings.TrimSpace(c.Cookies("access_token")); tok != "" {
			return tok, nil
		}
	}
	return "", errors.New("Unauthorized - No token provided")
}
