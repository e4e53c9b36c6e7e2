package routes

import (
	"audit-app/config"
	"audit-app/controllers"
	"audit-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuditRoutes(app *fiber.App, db *gorm.DB) {
	entryController := controllers.NewAuditEntryController(db)
	inventoryController := controllers.NewInventoryController(db)
	staffController := controllers.NewStaffController(db)

	api := app.Group(
		config.MAIN_ROUTES+"/audit",
		middleware.AuthMiddleware,
		middleware.RequireRole(middleware.RoleAuditStaff),
	)

	api.Post("/entries", entryController.CreateEntry)
	api.Get("/entries", entryController.GetMyEntries)
	api.Get("/inventory/:sku", inventoryController.GetBySku)
	api.Get("/locations", staffController.GetStaffLocations)
	api.Get("/reviewers", entryController.GetReviewers)
}
