package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is a line entry linking an order to an inventory item. At most
// one row exists per (order, inventory item) pair; toggling an item off
// flips IsActive instead of deleting, keeping the quantity for re-activation.
type OrderItem struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	OrderID     uint           `json:"order_id" gorm:"not null;uniqueIndex:idx_order_inventory"`
	InventoryID uint           `json:"inventory_id" gorm:"not null;uniqueIndex:idx_order_inventory"`
	Quantity    int            `json:"quantity" gorm:"not null;default:1"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// OrderLine is an OrderItem joined with its inventory row. Read paths that
// need pricing or names return OrderLine, so callers never dereference a
// missing relation on a bare OrderItem.
type OrderLine struct {
	Item      OrderItem     `json:"item"`
	Inventory InventoryItem `json:"inventory"`
}

// Subtotal is the line contribution to the order total.
func (l OrderLine) Subtotal() float64 {
	return float64(l.Item.Quantity) * l.Inventory.Price
}
