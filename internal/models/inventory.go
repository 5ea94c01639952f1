package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryItem is a sellable catalog entry. Items are never hard-deleted;
// deactivation keeps historical order items pointing at a real row.
type InventoryItem struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"` // uppercased on creation
	Price     float64        `json:"price" gorm:"not null"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
