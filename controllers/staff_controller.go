package controllers

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"audit-app/config"
	"audit-app/models"
	"audit-app/repositories"
	"audit-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(DB *gorm.DB) *StaffController {
	return &StaffController{DB: DB}
}

var pinPattern = regexp.MustCompile(`^\d{4}$`)

func hashPin(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// GetStaffLocations returns the logged in clerk's record with the locations
// they are permitted to audit.
func (c *StaffController) GetStaffLocations(ctx *fiber.Ctx) error {
	staffCode, _ := ctx.Locals("staffID").(string)

	staffRepo := repositories.NewStaffRepository(c.DB)
	staff, err := staffRepo.GetAuditStaffByCode(utils.NormalizeCode(staffCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Audit staff not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":        staff.ID,
			"staff_id":  staff.StaffID,
			"name":      staff.Name,
			"locations": staff.LocationList(),
			"is_active": staff.IsActive,
		},
	})
}

// GetAllStaff lists both rosters for the admin dashboard.
func (c *StaffController) GetAllStaff(ctx *fiber.Ctx) error {
	staffRepo := repositories.NewStaffRepository(c.DB)

	auditStaff, err := staffRepo.GetAllAuditStaff()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	clientStaff, err := staffRepo.GetAllClientStaff()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	for i := range auditStaff {
		auditStaff[i].Pin = ""
	}
	for i := range clientStaff {
		clientStaff[i].Pin = ""
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"audit_staff":  auditStaff,
			"client_staff": clientStaff,
		},
	})
}

type manageStaffInput struct {
	Action string `json:"action" validate:"required,oneof=add edit delete toggle"`
	Type   string `json:"type" validate:"required,oneof=audit client"`

	ID uint `json:"id"`

	StaffID   string   `json:"staff_id"`
	Name      string   `json:"name"`
	Pin       string   `json:"pin"`
	Location  string   `json:"location"`
	Locations []string `json:"locations"`
}

// ManageStaff handles add / edit / delete / toggle for both rosters.
func (c *StaffController) ManageStaff(ctx *fiber.Ctx) error {
	var input manageStaffInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	switch input.Action {
	case "add":
		return c.addStaff(ctx, input)
	case "edit":
		return c.editStaff(ctx, input)
	case "delete":
		return c.deleteStaff(ctx, input)
	case "toggle":
		return c.toggleStaff(ctx, input)
	}
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid action"})
}

func (c *StaffController) addStaff(ctx *fiber.Ctx, input manageStaffInput) error {
	if input.Name == "" || !pinPattern.MatchString(input.Pin) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and a 4 digit PIN are required"})
	}

	hashed, err := hashPin(input.Pin)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	userID := int(ctx.Locals("userID").(float64))

	if input.Type == "audit" {
		for _, loc := range input.Locations {
			if !config.IsValidLocation(loc) {
				return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown location: " + loc})
			}
		}
		locations := input.Locations
		if len(locations) == 0 {
			locations = []string{"Hyderabad WH"}
		}

		// Clerk codes are numbered sequentially from the last one issued.
		staffRepo := repositories.NewStaffRepository(c.DB)
		next := 1
		if last, err := staffRepo.LastAuditStaff(); err == nil {
			if n, convErr := strconv.Atoi(last.StaffID); convErr == nil {
				next = n + 1
			}
		}

		staff := models.AuditStaff{
			StaffID:   strconv.Itoa(next),
			Name:      strings.TrimSpace(input.Name),
			Pin:       hashed,
			Locations: strings.Join(locations, ","),
			IsActive:  true,
			CreatedBy: userID,
		}
		if err := c.DB.Create(&staff).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		staff.Pin = ""
		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Audit staff created successfully", "data": staff})
	}

	if input.StaffID == "" || !config.IsValidLocation(input.Location) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Staff ID and a valid location are required"})
	}

	staff := models.ClientStaff{
		StaffID:   utils.NormalizeCode(input.StaffID),
		Name:      strings.TrimSpace(input.Name),
		Pin:       hashed,
		Location:  input.Location,
		IsActive:  true,
		CreatedBy: userID,
	}
	if err := c.DB.Create(&staff).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	staff.Pin = ""
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Client staff created successfully", "data": staff})
}

func (c *StaffController) editStaff(ctx *fiber.Ctx, input manageStaffInput) error {
	if input.ID == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing staff ID"})
	}

	updates := map[string]interface{}{
		"updated_by": int(ctx.Locals("userID").(float64)),
	}
	if input.Name != "" {
		updates["name"] = strings.TrimSpace(input.Name)
	}
	if input.Pin != "" {
		if !pinPattern.MatchString(input.Pin) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "PIN must be exactly 4 digits"})
		}
		hashed, err := hashPin(input.Pin)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		updates["pin"] = hashed
	}

	if input.Type == "audit" {
		if len(input.Locations) > 0 {
			for _, loc := range input.Locations {
				if !config.IsValidLocation(loc) {
					return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown location: " + loc})
				}
			}
			updates["locations"] = strings.Join(input.Locations, ",")
		}
		return c.applyStaffUpdate(ctx, &models.AuditStaff{}, input.ID, updates)
	}

	if input.Location != "" {
		if !config.IsValidLocation(input.Location) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown location: " + input.Location})
		}
		updates["location"] = input.Location
	}
	return c.applyStaffUpdate(ctx, &models.ClientStaff{}, input.ID, updates)
}

func (c *StaffController) applyStaffUpdate(ctx *fiber.Ctx, model interface{}, id uint, updates map[string]interface{}) error {
	result := c.DB.Model(model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": result.Error.Error()})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff not found"})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Staff updated successfully"})
}

func (c *StaffController) deleteStaff(ctx *fiber.Ctx, input manageStaffInput) error {
	if input.ID == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing staff ID"})
	}

	var result *gorm.DB
	if input.Type == "audit" {
		result = c.DB.Delete(&models.AuditStaff{}, input.ID)
	} else {
		result = c.DB.Delete(&models.ClientStaff{}, input.ID)
	}
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": result.Error.Error()})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff not found"})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Staff deleted successfully"})
}

func (c *StaffController) toggleStaff(ctx *fiber.Ctx, input manageStaffInput) error {
	if input.ID == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing staff ID"})
	}

	if input.Type == "audit" {
		var staff models.AuditStaff
		if err := c.DB.First(&staff, input.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff not found"})
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		staff.IsActive = !staff.IsActive
		staff.UpdatedBy = int(ctx.Locals("userID").(float64))
		if err := c.DB.Save(&staff).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"is_active": staff.IsActive}})
	}

	var staff models.ClientStaff
	if err := c.DB.First(&staff, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	staff.IsActive = !staff.IsActive
	staff.UpdatedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Save(&staff).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"is_active": staff.IsActive}})
}
