package routes

import (
	"audit-app/config"
	"audit-app/controllers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controllers.NewAuthController(db)

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/audit-clerk", authController.AuditClerkLogin)
	api.Post("/client-staff", authController.ClientStaffLogin)
	api.Post("/admin", authController.AdminLogin)
}
