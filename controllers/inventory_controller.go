package controllers

import (
	"errors"

	"audit-app/repositories"
	"audit-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(DB *gorm.DB) *InventoryController {
	return &InventoryController{DB: DB}
}

// GetBySku looks up one SKU so the clerk form can prefill the reference
// locations and ODIN quantities.
func (c *InventoryController) GetBySku(ctx *fiber.Ctx) error {
	sku := ctx.Params("sku")
	if sku == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing SKU ID"})
	}

	inventoryRepo := repositories.NewInventoryRepository(c.DB)
	item, err := inventoryRepo.GetBySkuID(utils.NormalizeCode(sku))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Inventory not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": item})
}

func (c *InventoryController) GetAll(ctx *fiber.Ctx) error {
	inventoryRepo := repositories.NewInventoryRepository(c.DB)
	items, err := inventoryRepo.GetAll()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": items})
}

// CreateInventory adds or updates one SKU master record.
func (c *InventoryController) CreateInventory(ctx *fiber.Ctx) error {
	var input struct {
		SkuID           string  `json:"sku_id" validate:"required"`
		Name            string  `json:"name" validate:"required"`
		PickingLocation string  `json:"picking_location"`
		BulkLocation    string  `json:"bulk_location"`
		MinQtyOdin      float64 `json:"min_qty_odin"`
		BlockedQtyOdin  float64 `json:"blocked_qty_odin"`
		MaxQtyOdin      float64 `json:"max_qty_odin"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.MinQtyOdin < 0 || input.BlockedQtyOdin < 0 || input.MaxQtyOdin < 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Reference quantities cannot be negative"})
	}

	userID := int(ctx.Locals("userID").(float64))
	inventoryRepo := repositories.NewInventoryRepository(c.DB)

	// The form always carries all three quantities, so each one is applied
	// as given, zero included.
	item := repositories.InventoryUpsert{
		SkuID:           input.SkuID,
		Name:            input.Name,
		PickingLocation: input.PickingLocation,
		BulkLocation:    input.BulkLocation,
		MinQtyOdin:      &input.MinQtyOdin,
		BlockedQtyOdin:  &input.BlockedQtyOdin,
		MaxQtyOdin:      &input.MaxQtyOdin,
		CreatedBy:       userID,
		UpdatedBy:       userID,
	}

	updated, err := inventoryRepo.Upsert(item)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	message := "Inventory created successfully"
	status := fiber.StatusCreated
	if updated {
		message = "Inventory updated successfully"
		status = fiber.StatusOK
	}
	return ctx.Status(status).JSON(fiber.Map{"success": true, "message": message})
}
