package models

import "gorm.io/gorm"

// Inventory is the SKU master. The three ODIN quantities are reference counts
// from the external system of record; audit entries copy them at creation.
type Inventory struct {
	gorm.Model
	SkuID           string  `json:"sku_id" gorm:"unique"`
	Name            string  `json:"name"`
	PickingLocation string  `json:"picking_location"`
	BulkLocation    string  `json:"bulk_location"`
	MinQtyOdin      float64 `json:"min_qty_odin" gorm:"default:0"`
	BlockedQtyOdin  float64 `json:"blocked_qty_odin" gorm:"default:0"`
	MaxQtyOdin      float64 `json:"max_qty_odin" gorm:"default:0"`
	CreatedBy       int     `json:"created_by"`
	UpdatedBy       int     `json:"updated_by"`
}
