package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"audit-app/models"
	"audit-app/repositories"
	"audit-app/services"
	"audit-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type AuditEntryController struct {
	DB *gorm.DB
}

func NewAuditEntryController(DB *gorm.DB) *AuditEntryController {
	return &AuditEntryController{DB: DB}
}

func (c *AuditEntryController) reconciliation() *services.ReconciliationService {
	return services.NewReconciliationService(
		repositories.NewStaffRepository(c.DB),
		repositories.NewInventoryRepository(c.DB),
		repositories.NewAuditEntryRepository(c.DB),
	)
}

// Quantities arrive as free text from the count form; anything unparsable
// counts as zero (utils.ParseQty).
type entryInput struct {
	Location string `json:"location" validate:"required"`
	SkuID    string `json:"sku_id" validate:"required"`

	PickingQty         string `json:"picking_qty"`
	PickingLocation    string `json:"picking_location"`
	BulkQty            string `json:"bulk_qty"`
	BulkLocation       string `json:"bulk_location"`
	NearExpiryQty      string `json:"near_expiry_qty"`
	NearExpiryLocation string `json:"near_expiry_location"`
	JitQty             string `json:"jit_qty"`
	JitLocation        string `json:"jit_location"`
	DamagedQty         string `json:"damaged_qty"`
	DamagedLocation    string `json:"damaged_location"`

	QtyTested string `json:"qty_tested"`

	AssignedClientStaffID uint   `json:"assigned_client_staff_id"`
	ObjectionRemarks      string `json:"objection_remarks"`
}

// CreateEntry records one audit count for the logged in clerk. The entry is
// persisted Completed when the count reconciles against the ODIN maximum, or
// Submitted with an objection routed to the assigned client staff when it
// does not.
func (c *AuditEntryController) CreateEntry(ctx *fiber.Ctx) error {
	var input entryInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	staffID, _ := ctx.Locals("staffID").(string)
	entry, err := c.reconciliation().Submit(services.EntryInput{
		AuditStaffCode: staffID,
		Location:       input.Location,
		SkuID:          input.SkuID,
		Counts: services.CategoryCounts{
			Picking:    utils.ParseQty(input.PickingQty),
			Bulk:       utils.ParseQty(input.BulkQty),
			NearExpiry: utils.ParseQty(input.NearExpiryQty),
			Jit:        utils.ParseQty(input.JitQty),
			Damaged:    utils.ParseQty(input.DamagedQty),
		},
		PickingLocation:       input.PickingLocation,
		BulkLocation:          input.BulkLocation,
		NearExpiryLocation:    input.NearExpiryLocation,
		JitLocation:           input.JitLocation,
		DamagedLocation:       input.DamagedLocation,
		QtyTested:             utils.ParseQty(input.QtyTested),
		AssignedClientStaffID: input.AssignedClientStaffID,
		ObjectionRemarks:      input.ObjectionRemarks,
	})
	if err != nil {
		return submitErrorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Audit entry created successfully",
		"data":    entry,
	})
}

func submitErrorResponse(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAuditStaffNotFound),
		errors.Is(err, services.ErrInventoryNotFound),
		errors.Is(err, services.ErrReviewerNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAuditStaffInactive),
		errors.Is(err, services.ErrReviewerInactive):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidLocation),
		errors.Is(err, services.ErrLocationNotAllowed),
		errors.Is(err, services.ErrAssigneeRequired),
		errors.Is(err, services.ErrRemarksRequired),
		errors.Is(err, services.ErrReviewerWrongSite):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// GetMyEntries lists the logged in clerk's entries, most recent first.
func (c *AuditEntryController) GetMyEntries(ctx *fiber.Ctx) error {
	staffCode, _ := ctx.Locals("staffID").(string)

	staffRepo := repositories.NewStaffRepository(c.DB)
	staff, err := staffRepo.GetAuditStaffByCode(utils.NormalizeCode(staffCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Audit staff not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	entryRepo := repositories.NewAuditEntryRepository(c.DB)
	entries, err := entryRepo.GetByAuditStaffID(staff.ID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": entries})
}

// GetAllEntries lists every entry, most recent first, for the client review
// and admin dashboards.
func (c *AuditEntryController) GetAllEntries(ctx *fiber.Ctx) error {
	entryRepo := repositories.NewAuditEntryRepository(c.DB)
	entries, err := entryRepo.GetAll()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": entries})
}

// AdjudicateEntry applies a client reviewer's decision to a submitted entry.
func (c *AuditEntryController) AdjudicateEntry(ctx *fiber.Ctx) error {
	var input struct {
		ID       string `json:"id" validate:"required"`
		Action   string `json:"action" validate:"required"`
		Comments string `json:"comments"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing query ID or action"})
	}

	id, err := strconv.ParseInt(input.ID, 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query ID"})
	}

	entry, err := c.reconciliation().Adjudicate(id, input.Action, input.Comments)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEntryNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Query not found"})
		case errors.Is(err, models.ErrInvalidClientAction),
			errors.Is(err, models.ErrCommentsRequired):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, models.ErrEntryNotSubmitted):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Query updated successfully",
		"data":    entry,
	})
}

// GetReviewers lists the active client staff for a location so the clerk can
// pick an assignee before submitting an objection.
func (c *AuditEntryController) GetReviewers(ctx *fiber.Ctx) error {
	location := ctx.Query("location")
	if location == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing location"})
	}

	staffRepo := repositories.NewStaffRepository(c.DB)
	reviewers, err := staffRepo.GetReviewersByLocation(location)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	data := make([]fiber.Map, 0, len(reviewers))
	for _, reviewer := range reviewers {
		data = append(data, fiber.Map{
			"id":       reviewer.ID,
			"name":     reviewer.Name,
			"staff_id": reviewer.StaffID,
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": data})
}

// ExportExcel streams every audit entry as an Excel report.
func (c *AuditEntryController) ExportExcel(ctx *fiber.Ctx) error {
	entryRepo := repositories.NewAuditEntryRepository(c.DB)
	entries, err := entryRepo.GetAll()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Entry ID", "Created At", "Audit Staff", "Location", "SKU", "SKU Name",
		"Picking Qty", "Bulk Qty", "Near Expiry Qty", "JIT Qty", "Damaged Qty",
		"Total Identified", "Max Qty ODIN", "Status", "Objection Type", "Assigned Client Staff", "Client Action"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"1", h)
	}

	for i, entry := range entries {
		row := i + 2
		objectionType := ""
		if entry.ObjectionType != nil {
			objectionType = *entry.ObjectionType
		}
		values := []interface{}{
			strconv.FormatInt(int64(entry.ID), 10),
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.AuditStaffName,
			entry.Location,
			entry.SkuID,
			entry.SkuName,
			entry.PickingQty,
			entry.BulkQty,
			entry.NearExpiryQty,
			entry.JitQty,
			entry.DamagedQty,
			entry.TotalQuantityIdentified,
			entry.MaxQtyOdin,
			entry.Status,
			objectionType,
			entry.AssignedClientStaffName,
			entry.ClientAction,
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="audit_entries.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
