package controllers

import (
	"errors"
	"strconv"
	"strings"

	"audit-app/config"
	"audit-app/models"
	"audit-app/repositories"
	"audit-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UploadController handles the admin CSV imports and template downloads.
type UploadController struct {
	DB *gorm.DB
}

func NewUploadController(DB *gorm.DB) *UploadController {
	return &UploadController{DB: DB}
}

type uploadRowError struct {
	Row   string `json:"row"`
	Error string `json:"error"`
}

type uploadResults struct {
	Added   []fiber.Map      `json:"success"`
	Errors  []uploadRowError `json:"errors"`
	Skipped int              `json:"skipped"`
	Updated int              `json:"updated"`
}

func (c *UploadController) readUpload(ctx *fiber.Ctx) ([]map[string]string, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File must be a CSV")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Failed to read file")
	}
	defer file.Close()

	rows, err := utils.ReadCSVRecords(file)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Failed to parse CSV: "+err.Error())
	}
	if len(rows) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "CSV file is empty")
	}
	return rows, nil
}

func requireHeaders(rows []map[string]string, required ...string) error {
	var missing []string
	for _, field := range required {
		if _, ok := rows[0][field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

func uploadResponse(ctx *fiber.Ctx, total int, results uploadResults) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Processed " + strconv.Itoa(total) + " rows",
		"results": fiber.Map{
			"added":   len(results.Added),
			"updated": results.Updated,
			"skipped": results.Skipped,
			"errors":  len(results.Errors),
		},
		"details": results,
	})
}

// UploadAuditStaff imports audit clerks from CSV. Columns: staffId, name,
// pin, locations (comma separated inside quotes).
func (c *UploadController) UploadAuditStaff(ctx *fiber.Ctx) error {
	rows, err := c.readUpload(ctx)
	if err != nil {
		return uploadFailure(ctx, err)
	}
	if err := requireHeaders(rows, "staffId", "name", "pin", "locations"); err != nil {
		return uploadFailure(ctx, err)
	}

	staffRepo := repositories.NewStaffRepository(c.DB)
	userID := int(ctx.Locals("userID").(float64))
	var results uploadResults

	for _, row := range rows {
		staffID := row["staffId"]
		if staffID == "" || row["name"] == "" || row["pin"] == "" || row["locations"] == "" {
			results.Errors = append(results.Errors, uploadRowError{Row: rowLabel(staffID), Error: "Missing required fields (staffId, name, pin, or locations)"})
			continue
		}

		if _, err := staffRepo.GetAuditStaffByCode(utils.NormalizeCode(staffID)); err == nil {
			results.Skipped++
			continue
		}

		if !pinPattern.MatchString(row["pin"]) {
			results.Errors = append(results.Errors, uploadRowError{Row: staffID, Error: "PIN must be exactly 4 digits"})
			continue
		}

		var locations []string
		badLocation := ""
		for _, loc := range strings.Split(row["locations"], ",") {
			loc = strings.TrimSpace(loc)
			if loc == "" {
				continue
			}
			if !config.IsValidLocation(loc) {
				badLocation = loc
				break
			}
			locations = append(locations, loc)
		}
		if badLocation != "" {
			results.Errors = append(results.Errors, uploadRowError{Row: staffID, Error: "Unknown location: " + badLocation})
			continue
		}

		hashed, err := hashPin(row["pin"])
		if err != nil {
			results.Errors = append(results.Errors, uploadRowError{Row: staffID, Error: err.Error()})
			continue
		}

		staff := models.AuditStaff{
			StaffID:   utils.NormalizeCode(staffID),
			Name:      row["name"],
			Pin:       hashed,
			Locations: strings.Join(locations, ","),
			IsActive:  true,
			CreatedBy: userID,
		}
		if err := c.DB.Create(&staff).Error; err != nil {
			results.Errors = append(results.Errors, uploadRowError{Row: staffID, Error: err.Error()})
			continue
		}
		results.Added = append(results.Added, fiber.Map{"staff_id": staff.StaffID, "name": staff.Name})
	}

	return uploadResponse(ctx, len(rows), results)
}

// UploadClientStaff imports client reviewers from CSV. Columns: staffId,
// name, pin, location.
func (c *UploadController) UploadClientStaff(ctx *fiber.Ctx) error {
	rows, err := c.readUpload(ctx)
	if err != nil {
		return uploadFailure(ctx, err)
	}
	if err := requireHeaders(rows, "staffId", "name", "pin", "location"); err != nil {
		return uploadFailure(ctx, err)
	}

	staffRepo := repositories.NewStaffRepository(c.DB)
	userID := int(ctx.Locals("userID").(float64))
	var results uploadResults

	for _, row := range rows {
		staffID := row["staffId"]
		if staffID == "" || row["name"] == "" || row["pin"] == "" || row["location"] == "" {
			results.Errors = append(results.Errors, uploadRowError{Row: rowLabel(staffID), Error: "Missing required fields (staffId, name, pin, or location)"})
			continue
		}

		if _, err := staffRepo.GetClientStaffByCode(utils.NormalizeCode(staffID)); err == nil {
			results.Skipped++
			continue
		}

		if !pinPattern.MatchString(row["pin"]) {
			results.Errors = append(results.Errors, uploadRowError{Row: staffID, Error: "PIN must be exactly 4 digits"})
			continue
		}

		if !config.IsValidLocation(row["location"]) {
			results.Errors = append(results.Errors, uploadRowError{Row: staffID, Error: "Unknown location: " + row["location"]})
			continue
		}

		hashed, err := hashPin(row["pin"])
		if err != nil {
			results.Errors = append(results.Errors, uploadRowError{Row: staffID, Error: err.Error()})
			continue
		}

		staff := models.ClientStaff{
			StaffID:   utils.NormalizeCode(staffID),
			Name:      row["name"],
			Pin:       hashed,
			Location:  row["location"],
			IsActive:  true,
			CreatedBy: userID,
		}
		if err := c.DB.Create(&staff).Error; err != nil {
			results.Errors = append(results.Errors, uploadRowError{Row: staffID, Error: err.Error()})
			continue
		}
		results.Added = append(results.Added, fiber.Map{"staff_id": staff.StaffID, "name": staff.Name, "location": staff.Location})
	}

	return uploadResponse(ctx, len(rows), results)
}

// UploadInventory imports the SKU master from CSV. Existing SKUs are updated,
// new ones created. Columns: skuId, name, pickingLocation, bulkLocation,
// minQtyOdin, blockedQtyOdin, maxQtyOdin.
func (c *UploadController) UploadInventory(ctx *fiber.Ctx) error {
	rows, err := c.readUpload(ctx)
	if err != nil {
		return uploadFailure(ctx, err)
	}
	if err := requireHeaders(rows, "skuId", "name"); err != nil {
		return uploadFailure(ctx, err)
	}

	inventoryRepo := repositories.NewInventoryRepository(c.DB)
	userID := int(ctx.Locals("userID").(float64))
	var results uploadResults

	for _, row := range rows {
		skuID := row["skuId"]
		if skuID == "" || row["name"] == "" {
			results.Errors = append(results.Errors, uploadRowError{Row: rowLabel(skuID), Error: "Missing required fields (skuId or name)"})
			continue
		}

		// Blank quantity cells keep the stored values; an explicit "0"
		// resets the stored quantity.
		item := repositories.InventoryUpsert{
			SkuID:           skuID,
			Name:            row["name"],
			PickingLocation: row["pickingLocation"],
			BulkLocation:    row["bulkLocation"],
			MinQtyOdin:      utils.ParseQtyCell(row["minQtyOdin"]),
			BlockedQtyOdin:  utils.ParseQtyCell(row["blockedQtyOdin"]),
			MaxQtyOdin:      utils.ParseQtyCell(row["maxQtyOdin"]),
			CreatedBy:       userID,
			UpdatedBy:       userID,
		}

		updated, err := inventoryRepo.Upsert(item)
		if err != nil {
			results.Errors = append(results.Errors, uploadRowError{Row: skuID, Error: err.Error()})
			continue
		}
		if updated {
			results.Updated++
			continue
		}
		results.Added = append(results.Added, fiber.Map{"sku_id": utils.NormalizeCode(skuID), "name": row["name"]})
	}

	return uploadResponse(ctx, len(rows), results)
}

// DownloadTemplate serves the CSV templates for the three imports.
func (c *UploadController) DownloadTemplate(ctx *fiber.Ctx) error {
	content, filename, ok := TemplateCSV(ctx.Query("type"))
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template type"})
	}

	ctx.Set("Content-Type", "text/csv; charset=utf-8")
	ctx.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return ctx.SendString(content)
}

// TemplateCSV returns the sample CSV content and filename for an import kind.
func TemplateCSV(kind string) (content, filename string, ok bool) {
	switch kind {
	case "audit-staff":
		return "staffId,name,pin,locations\nAUD-001,John Doe,1234,\"Noida WH,Mumbai WH\"\nAUD-002,Jane Smith,5678,\"Noida WH\"",
			"audit_staff_template.csv", true
	case "client-staff":
		return "staffId,name,pin,location\nCLI-001,Amit Kumar,4321,Noida WH\nCLI-002,Sneha Reddy,8765,Mumbai WH",
			"client_staff_template.csv", true
	case "inventory":
		return "skuId,name,pickingLocation,bulkLocation,minQtyOdin,blockedQtyOdin,maxQtyOdin\n657611,Product A - Electronics,A-1-1,B-1-1,50,5,200\n657612,Product B - Furniture,A-1-2,B-1-2,30,0,100\n657613,Product C - Clothing,A-2-1,B-2-1,100,10,500",
			"inventory_template.csv", true
	}
	return "", "", false
}

func uploadFailure(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func rowLabel(id string) string {
	if id == "" {
		return "Unknown"
	}
	return id
}
