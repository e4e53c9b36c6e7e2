package routes

import (
	"audit-app/config"
	"audit-app/controllers"
	"audit-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupClientRoutes(app *fiber.App, db *gorm.DB) {
	entryController := controllers.NewAuditEntryController(db)

	api := app.Group(
		config.MAIN_ROUTES+"/client",
		middleware.AuthMiddleware,
		middleware.RequireRole(middleware.RoleClientStaff, middleware.RoleAdmin),
	)

	api.Get("/queries", entryController.GetAllEntries)
	api.Put("/queries", entryController.AdjudicateEntry)
}
