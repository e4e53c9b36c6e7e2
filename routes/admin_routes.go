package routes

import (
	"audit-app/config"
	"audit-app/controllers"
	"audit-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAdminRoutes(app *fiber.App, db *gorm.DB) {
	staffController := controllers.NewStaffController(db)
	uploadController := controllers.NewUploadController(db)
	inventoryController := controllers.NewInventoryController(db)
	entryController := controllers.NewAuditEntryController(db)

	api := app.Group(
		config.MAIN_ROUTES+"/admin",
		middleware.AuthMiddleware,
		middleware.RequireRole(middleware.RoleAdmin),
	)

	api.Get("/staff", staffController.GetAllStaff)
	api.Post("/staff", staffController.ManageStaff)

	api.Post("/upload/audit-staff", uploadController.UploadAuditStaff)
	api.Post("/upload/client-staff", uploadController.UploadClientStaff)
	api.Post("/upload/inventory", uploadController.UploadInventory)
	api.Get("/templates", uploadController.DownloadTemplate)

	api.Get("/inventory", inventoryController.GetAll)
	api.Post("/inventory", inventoryController.CreateInventory)

	api.Get("/entries", entryController.GetAllEntries)
	api.Get("/entries/export", entryController.ExportExcel)
}
