package service

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ecoquest_backend/internals/configs"
	authHelper "ecoquest_backend/internals/features/users/auth/helper"
	authRepo "ecoquest_backend/internals/features/users/auth/repository"
	userDTO "ecoquest_backend/internals/features/users/user/dto"
	userModel "ecoquest_backend/internals/features/users/user/model"
	userService "ecoquest_backend/internals/features/users/user/service"
	helpers "ecoquest_backend/internals/helpers"
	helpersAuth "ecoquest_backend/internals/helpers/auth"
)

func nowUTC() time.Time { return time.Now().UTC() }

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Name     string  `json:"name"`
		Email    string  `json:"email"`
		Password string  `json:"password"`
		School   *string `json:"school"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if err := authHelper.ValidateRegisterInput(input.Name, input.Email, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	hash, err := userService.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	// self-register selalu student
	user := userModel.UserModel{
		UserEmail:    input.Email,
		UserName:     input.Name,
		UserPassword: &hash,
		UserRole:     userModel.UserRoleStudent,
		UserSchool:   input.School,
		UserIsActive: true,
	}
	if err := userService.CreateUser(c.UserContext(), db, &user); err != nil {
		return helpers.FromServiceError(c, err)
	}

	log.Printf("[AUTH] registered user=%s", user.UserID)
	return helpers.JsonCreated(c, "Registration successful", userDTO.FromModel(user))
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := authRepo.FindUserByEmail(db.WithContext(c.UserContext()), input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}
	if user.UserPassword == nil || userService.CheckPasswordHash(*user.UserPassword, input.Password) != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !user.UserIsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	return issueToken(c, *user)
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.IDToken) == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if configs.GoogleClientID == "" {
		return helpers.JsonError(c, fiber.StatusServiceUnavailable, "Google sign-in belum dikonfigurasi")
	}

	// Verifikasi token Google
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadGateway, "Failed to decode ID Token")
	}
	email, name, googleID := strings.ToLower(claimSet.Email), claimSet.Name, claimSet.Sub

	tx := db.WithContext(c.UserContext())
	user, err := authRepo.FindUserByGoogleID(tx, googleID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
		}
		// belum pernah login Google: tautkan ke akun email yang sama, atau buat baru
		if byEmail, err := authRepo.FindUserByEmail(tx, email); err == nil {
			if err := authRepo.LinkGoogleID(tx, byEmail.UserID, googleID); err != nil {
				return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menautkan akun Google")
			}
			user = byEmail
		} else {
			if name == "" {
				name = strings.Split(email, "@")[0]
			}
			newUser := userModel.UserModel{
				UserEmail:    email,
				UserName:     name,
				UserGoogleID: &googleID,
				UserRole:     userModel.UserRoleStudent,
				UserIsActive: true,
			}
			if err := userService.CreateUser(c.UserContext(), db, &newUser); err != nil {
				return helpers.FromServiceError(c, err)
			}
			user = &newUser
		}
	}

	if !user.UserIsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}
	return issueToken(c, *user)
}

/* ==========================
   ME / LOGOUT
========================== */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpersAuth.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromServiceError(c, err)
	}
	user, err := authRepo.FindUserByID(db.WithContext(c.UserContext()), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}
	return helpers.JsonOK(c, "ok", userDTO.FromModel(*user))
}

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := helpersAuth.GetRawAccessToken(c)

	if accessToken != "" {
		exp := nowUTC().Add(configs.JWTTTL)
		if claims, err := ParseAccessToken(accessToken, configs.JWTSecret); err == nil && claims.ExpiresAt != nil {
			exp = claims.ExpiresAt.Time
		}
		if err := helpersAuth.AddToBlacklist(c.UserContext(), db, accessToken, configs.JWTSecret, exp); err != nil {
			log.Printf("[WARN] Failed to blacklist token: %v", err)
		}
	} else {
		log.Println("[INFO] Logout tanpa access token; lanjut clear cookies (idempotent)")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   configs.IsProduction(),
		SameSite: "Lax",
		Path:     "/",
		Expires:  nowUTC().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helpers.JsonOK(c, "Logout successful", nil)
}

/* ==========================
   TOKEN
========================== */

func issueToken(c *fiber.Ctx, user userModel.UserModel) error {
	now := nowUTC()
	token, exp, err := IssueAccessToken(user, configs.JWTSecret, configs.JWTTTL, now)
	if err != nil {
		log.Println("[ERROR] sign token:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat access token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   configs.IsProduction(),
		SameSite: "Lax",
		Path:     "/",
		Expires:  exp,
	})
	return helpers.JsonOK(c, "Login berhasil", fiber.Map{
		"user":         userDTO.FromModel(user),
		"access_token": token,
		"expires_at":   exp,
	})
}
