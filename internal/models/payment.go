package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is created together with its order and stays one-to-one with it.
// Amount and status are written exactly once, at order confirmation.
type Payment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	OrderID   uint           `json:"order_id" gorm:"not null;uniqueIndex"`
	Amount    float64        `json:"amount" gorm:"default:0"`
	Type      string         `json:"payment_type" gorm:"column:payment_type;default:'CASH'"` // CASH, MPESA
	Status    string         `json:"payment_status" gorm:"column:payment_status;default:'INITIALIZED'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type PaymentType string

const (
	PaymentCash  PaymentType = "CASH"
	PaymentMpesa PaymentType = "MPESA"
)

func ValidPaymentType(t string) bool {
	switch PaymentType(t) {
	case PaymentCash, PaymentMpesa:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentInitialized PaymentStatus = "INITIALIZED"
	// PaymentPending and PaymentPartial are defined for schema compatibility;
	// only INITIALIZED and COMPLETED are produced by current transitions.
	PaymentPending   PaymentStatus = "PAYMENT_PENDING"
	PaymentPartial   PaymentStatus = "PARTIAL_PAYMENT"
	PaymentCompleted PaymentStatus = "COMPLETED"
)
