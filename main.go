package main

import (
	"fmt"
	"log"
	"time"

	"audit-app/config"
	"audit-app/controllers/idgen"
	"audit-app/database"
	"audit-app/migration"
	"audit-app/routes"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	db, err := config.OpenDatabaseConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, db)
	routes.SetupAuditRoutes(app, db)
	routes.SetupClientRoutes(app, db)
	routes.SetupAdminRoutes(app, db)

	app.Get("/health", healthHandler(db))

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}

		status := "ok"
		dbStatus := "connected"
		if err != nil {
			status = "error"
			dbStatus = "disconnected"
		}

		return ctx.JSON(fiber.Map{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"database":  dbStatus,
		})
	}
}
