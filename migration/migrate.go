package migration

import (
	"audit-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LoginLog{},
		&models.AuditStaff{},
		&models.ClientStaff{},
		&models.Inventory{},
		&models.AuditEntry{},
	)
}
