package repositories

import (
	"testing"

	"audit-app/models"

	"github.com/stretchr/testify/assert"
)

func qty(v float64) *float64 { return &v }

func storedItem() models.Inventory {
	return models.Inventory{
		SkuID:           "657611",
		Name:            "Product A",
		PickingLocation: "A-1-1",
		BulkLocation:    "B-1-1",
		MinQtyOdin:      50,
		BlockedQtyOdin:  5,
		MaxQtyOdin:      200,
	}
}

func TestMergeInventoryExplicitZeroResetsQuantities(t *testing.T) {
	existing := storedItem()

	// Re-import row 657611,Product A,,,0,0,0: the zeros are real values,
	// not absent columns.
	mergeInventory(&existing, InventoryUpsert{
		SkuID:          "657611",
		Name:           "Product A",
		MinQtyOdin:     qty(0),
		BlockedQtyOdin: qty(0),
		MaxQtyOdin:     qty(0),
	})

	assert.Equal(t, 0.0, existing.MinQtyOdin)
	assert.Equal(t, 0.0, existing.BlockedQtyOdin)
	assert.Equal(t, 0.0, existing.MaxQtyOdin)
}

func TestMergeInventoryNilQuantitiesKeepStoredValues(t *testing.T) {
	existing := storedItem()

	mergeInventory(&existing, InventoryUpsert{
		SkuID: "657611",
		Name:  "Product A (renamed)",
	})

	assert.Equal(t, "Product A (renamed)", existing.Name)
	assert.Equal(t, 50.0, existing.MinQtyOdin)
	assert.Equal(t, 5.0, existing.BlockedQtyOdin)
	assert.Equal(t, 200.0, existing.MaxQtyOdin)
}

func TestMergeInventoryBlankLocationsKeepStoredValues(t *testing.T) {
	existing := storedItem()

	mergeInventory(&existing, InventoryUpsert{
		SkuID:        "657611",
		Name:         "Product A",
		BulkLocation: "B-9-9",
		MaxQtyOdin:   qty(150),
	})

	assert.Equal(t, "A-1-1", existing.PickingLocation)
	assert.Equal(t, "B-9-9", existing.BulkLocation)
	assert.Equal(t, 150.0, existing.MaxQtyOdin)
}

func TestMergeInventoryRecordsUpdater(t *testing.T) {
	existing := storedItem()

	mergeInventory(&existing, InventoryUpsert{SkuID: "657611", Name: "Product A", UpdatedBy: 3})
	assert.Equal(t, 3, existing.UpdatedBy)
}
