package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Status    string         `json:"status" gorm:"default:'INITIALIZED'"` // INITIALIZED, FINALIZED, COMPLETED
	CreatedBy *uint          `json:"created_by"`                          // null for system-created legacy orders
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderStatus string

const (
	OrderInitialized OrderStatus = "INITIALIZED"
	// OrderFinalized is defined for schema compatibility; no transition
	// currently produces it.
	OrderFinalized OrderStatus = "FINALIZED"
	OrderCompleted OrderStatus = "COMPLETED"
)

// Completed reports whether the order has reached its terminal state.
// A completed order and its items are immutable.
func (o *Order) Completed() bool {
	return o.Status == string(OrderCompleted)
}
