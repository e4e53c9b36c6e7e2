package middleware

import (
	"strings"

	"audit-app/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the JWT role claim.
const (
	RoleAdmin       = "admin"
	RoleAuditStaff  = "audit"
	RoleClientStaff = "client"
)

// AuthMiddleware validates the bearer token and stores the identity claims in
// the request context for the handlers.
func AuthMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing Authorization header",
		})
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid Authorization header format",
		})
	}

	token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: Invalid signing method")
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid token",
			"error":   err.Error(),
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid token",
		})
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid user ID",
		})
	}

	role, ok := claims["role"].(string)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid role",
		})
	}

	staffID, _ := claims["staff_id"].(string)
	name, _ := claims["name"].(string)
	sessionID, _ := claims["session_id"].(string)

	ctx.Locals("userID", userID)
	ctx.Locals("role", role)
	ctx.Locals("staffID", staffID)
	ctx.Locals("name", name)
	ctx.Locals("sessionID", sessionID)

	return ctx.Next()
}

// RequireRole gates a route group to the given roles. Runs after
// AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, ok := ctx.Locals("role").(string)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: Invalid role",
			})
		}
		for _, allowed := range roles {
			if role == allowed {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden: You do not have permission",
		})
	}
}
