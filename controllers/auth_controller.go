package controllers

import (
	"errors"
	"time"

	"audit-app/config"
	"audit-app/models"
	"audit-app/repositories"
	"audit-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(DB *gorm.DB) *AuthController {
	return &AuthController{DB: DB}
}

type staffLoginInput struct {
	StaffID string `json:"staff_id" validate:"required"`
	Pin     string `json:"pin" validate:"required"`
}

func issueToken(userID uint, staffID, name, role string) (string, string, error) {
	sessionID := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    userID,
		"staff_id":   staffID,
		"name":       name,
		"role":       role,
		"session_id": sessionID,
		"exp":        time.Now().Add(time.Duration(config.JWTExpiration) * time.Second).Unix(),
		"jti":        uuid.NewString(),
	})

	signed, err := token.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return "", "", err
	}
	return signed, sessionID, nil
}

func (c *AuthController) recordLogin(userType, staffID, username, sessionID, status string, reason string, ctx *fiber.Ctx) {
	entry := models.LoginLog{
		UserType:    userType,
		StaffID:     staffID,
		Username:    username,
		SessionID:   sessionID,
		LoginStatus: status,
		IPAddress:   ctx.IP(),
		UserAgent:   ctx.Get("User-Agent"),
	}
	if reason != "" {
		entry.FailureReason = &reason
	}
	c.DB.Create(&entry)
}

// AuditClerkLogin authenticates a warehouse audit clerk by staff code and PIN.
func (c *AuthController) AuditClerkLogin(ctx *fiber.Ctx) error {
	var input staffLoginInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing credentials"})
	}

	staffRepo := repositories.NewStaffRepository(c.DB)
	staff, err := staffRepo.GetAuditStaffByCode(utils.NormalizeCode(input.StaffID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.recordLogin("audit", input.StaffID, "", "", "FAILED", "unknown staff", ctx)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Pin), []byte(input.Pin)); err != nil {
		c.recordLogin("audit", staff.StaffID, "", "", "FAILED", "wrong PIN", ctx)
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid PIN"})
	}

	if !staff.IsActive {
		c.recordLogin("audit", staff.StaffID, "", "", "FAILED", "inactive account", ctx)
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is inactive"})
	}

	token, sessionID, err := issueToken(staff.ID, staff.StaffID, staff.Name, "audit")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	c.recordLogin("audit", staff.StaffID, "", sessionID, "SUCCESS", "", ctx)

	ctx.Cookie(config.GetTokenCookie(token))
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successfully",
		"x_token": token,
		"user": fiber.Map{
			"id":        staff.ID,
			"staff_id":  staff.StaffID,
			"name":      staff.Name,
			"locations": staff.LocationList(),
		},
	})
}

// ClientStaffLogin authenticates a client reviewer by staff code and PIN.
func (c *AuthController) ClientStaffLogin(ctx *fiber.Ctx) error {
	var input staffLoginInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing credentials"})
	}

	staffRepo := repositories.NewStaffRepository(c.DB)
	staff, err := staffRepo.GetClientStaffByCode(utils.NormalizeCode(input.StaffID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.recordLogin("client", input.StaffID, "", "", "FAILED", "unknown staff", ctx)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Pin), []byte(input.Pin)); err != nil {
		c.recordLogin("client", staff.StaffID, "", "", "FAILED", "wrong PIN", ctx)
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid PIN"})
	}

	if !staff.IsActive {
		c.recordLogin("client", staff.StaffID, "", "", "FAILED", "inactive account", ctx)
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is inactive"})
	}

	token, sessionID, err := issueToken(staff.ID, staff.StaffID, staff.Name, "client")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	c.recordLogin("client", staff.StaffID, "", sessionID, "SUCCESS", "", ctx)

	ctx.Cookie(config.GetTokenCookie(token))
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successfully",
		"x_token": token,
		"user": fiber.Map{
			"id":       staff.ID,
			"staff_id": staff.StaffID,
			"name":     staff.Name,
			"location": staff.Location,
		},
	})
}

// AdminLogin authenticates an administrator by username and password.
func (c *AuthController) AdminLogin(ctx *fiber.Ctx) error {
	var input struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing credentials"})
	}

	var user models.User
	if err := c.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.recordLogin("admin", "", input.Username, "", "FAILED", "unknown user", ctx)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid admin credentials"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.recordLogin("admin", "", user.Username, "", "FAILED", "wrong password", ctx)
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid admin credentials"})
	}

	if !user.IsActive {
		c.recordLogin("admin", "", user.Username, "", "FAILED", "inactive account", ctx)
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is inactive"})
	}

	token, sessionID, err := issueToken(user.ID, "", user.Name, "admin")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	c.recordLogin("admin", "", user.Username, sessionID, "SUCCESS", "", ctx)

	ctx.Cookie(config.GetTokenCookie(token))
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successfully",
		"x_token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
			"is_admin": true,
		},
	})
}
