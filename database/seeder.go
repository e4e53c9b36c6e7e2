package database

import (
	"fmt"
	"log"
	"strings"

	"audit-app/config"
	"audit-app/models"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"
	"gorm.io/gorm"
)

// RunSeeders makes sure a default admin exists and, when SEED_DEMO is set,
// loads a sample roster and inventory for local testing.
func RunSeeders(db *gorm.DB) {
	seedAdmin(db)

	if config.SeedDemo {
		seedDemoData(db)
	}
}

func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Failed to hash default admin password:", err)
		return
	}

	admin := models.User{
		Username: "admin",
		Password: string(hashed),
		Name:     "Administrator",
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Println("Failed to seed admin user:", err)
		return
	}
	fmt.Println("Seeded default admin user (admin/admin123), change the password")
}

func randomPin() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

func seedDemoData(db *gorm.DB) {
	var count int64
	db.Model(&models.AuditStaff{}).Count(&count)
	if count > 0 {
		return
	}

	auditStaff := []models.AuditStaff{
		{StaffID: "1", Name: "Ravi Sharma", Locations: strings.Join([]string{"Noida WH", "Gurugram WH"}, ",")},
		{StaffID: "2", Name: "Priya Nair", Locations: "Mumbai WH"},
	}
	clientStaff := []models.ClientStaff{
		{StaffID: "CLI-001", Name: "Amit Kumar", Location: "Noida WH"},
		{StaffID: "CLI-002", Name: "Sneha Reddy", Location: "Mumbai WH"},
	}

	for i := range auditStaff {
		pin := randomPin()
		hashed, _ := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		auditStaff[i].Pin = string(hashed)
		auditStaff[i].IsActive = true
		if err := db.Create(&auditStaff[i]).Error; err != nil {
			log.Println("Failed to seed audit staff:", err)
			continue
		}
		fmt.Printf("Seeded audit staff %s (%s) with PIN %s\n", auditStaff[i].StaffID, auditStaff[i].Name, pin)
	}

	for i := range clientStaff {
		pin := randomPin()
		hashed, _ := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		clientStaff[i].Pin = string(hashed)
		clientStaff[i].IsActive = true
		if err := db.Create(&clientStaff[i]).Error; err != nil {
			log.Println("Failed to seed client staff:", err)
			continue
		}
		fmt.Printf("Seeded client staff %s (%s) with PIN %s\n", clientStaff[i].StaffID, clientStaff[i].Name, pin)
	}

	inventory := []models.Inventory{
		{SkuID: "657611", Name: "Product A - Electronics", PickingLocation: "A-1-1", BulkLocation: "B-1-1", MinQtyOdin: 50, BlockedQtyOdin: 5, MaxQtyOdin: 200},
		{SkuID: "657612", Name: "Product B - Furniture", PickingLocation: "A-1-2", BulkLocation: "B-1-2", MinQtyOdin: 30, MaxQtyOdin: 100},
		{SkuID: "657613", Name: "Product C - Clothing", PickingLocation: "A-2-1", BulkLocation: "B-2-1", MinQtyOdin: 100, BlockedQtyOdin: 10, MaxQtyOdin: 500},
	}
	if err := db.Create(&inventory).Error; err != nil {
		log.Println("Failed to seed inventory:", err)
	}
}
