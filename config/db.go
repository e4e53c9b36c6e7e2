package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// OpenDatabaseConnection connects to the configured database using Gorm.
// The driver is selected by DB_DRIVER: mssql, mysql or postgres.
func OpenDatabaseConnection() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			DBUser, DBPassword, DBHost, DBPort, DBName)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			DBHost, DBUser, DBPassword, DBName, DBPort)
		dialector = postgres.Open(dsn)
	case "mssql":
		dsn := "sqlserver://" + DBUser + ":" + DBPassword + "@" + DBHost + ":" + DBPort + "?database=" + DBName
		dialector = sqlserver.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB driver: %s", DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return nil, err
	}

	return db, nil
}
