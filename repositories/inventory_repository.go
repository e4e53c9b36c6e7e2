package repositories

import (
	"errors"

	"audit-app/models"
	"audit-app/utils"

	"gorm.io/gorm"
)

type InventoryRepository struct {
	DB *gorm.DB
}

func NewInventoryRepository(DB *gorm.DB) *InventoryRepository {
	return &InventoryRepository{DB: DB}
}

func (r *InventoryRepository) GetBySkuID(skuID string) (*models.Inventory, error) {
	var item models.Inventory
	err := r.DB.Where("sku_id = ?", skuID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) GetAll() ([]models.Inventory, error) {
	var items []models.Inventory
	err := r.DB.Order("sku_id asc").Find(&items).Error
	return items, err
}

// InventoryUpsert is one add-or-update row for the SKU master. A nil quantity
// means the column was absent and the stored value is kept; a non-nil value
// is applied as given, so an explicit 0 resets the stored quantity.
type InventoryUpsert struct {
	SkuID           string
	Name            string
	PickingLocation string
	BulkLocation    string

	MinQtyOdin     *float64
	BlockedQtyOdin *float64
	MaxQtyOdin     *float64

	CreatedBy int
	UpdatedBy int
}

func qtyOrZero(q *float64) float64 {
	if q == nil {
		return 0
	}
	return *q
}

// mergeInventory applies an upsert row onto the stored record. The name is
// always replaced; blank locations and nil quantities keep their stored
// values.
func mergeInventory(existing *models.Inventory, input InventoryUpsert) {
	existing.Name = input.Name
	if input.PickingLocation != "" {
		existing.PickingLocation = input.PickingLocation
	}
	if input.BulkLocation != "" {
		existing.BulkLocation = input.BulkLocation
	}
	if input.MinQtyOdin != nil {
		existing.MinQtyOdin = *input.MinQtyOdin
	}
	if input.BlockedQtyOdin != nil {
		existing.BlockedQtyOdin = *input.BlockedQtyOdin
	}
	if input.MaxQtyOdin != nil {
		existing.MaxQtyOdin = *input.MaxQtyOdin
	}
	existing.UpdatedBy = input.UpdatedBy
}

// Upsert applies an import row: an existing SKU is updated in place via
// mergeInventory, a new SKU is created uppercase. The returned flag reports
// whether an existing row was updated.
func (r *InventoryRepository) Upsert(input InventoryUpsert) (updated bool, err error) {
	skuID := utils.NormalizeCode(input.SkuID)

	var existing models.Inventory
	err = r.DB.Where("sku_id = ?", skuID).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		item := models.Inventory{
			SkuID:           skuID,
			Name:            input.Name,
			PickingLocation: input.PickingLocation,
			BulkLocation:    input.BulkLocation,
			MinQtyOdin:      qtyOrZero(input.MinQtyOdin),
			BlockedQtyOdin:  qtyOrZero(input.BlockedQtyOdin),
			MaxQtyOdin:      qtyOrZero(input.MaxQtyOdin),
			CreatedBy:       input.CreatedBy,
			UpdatedBy:       input.UpdatedBy,
		}
		return false, r.DB.Create(&item).Error
	}

	mergeInventory(&existing, input)
	return true, r.DB.Save(&existing).Error
}
