package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Service error taxonomy. Handlers map these onto HTTP status codes; raw
// storage errors never cross the service boundary.
var (
	// ErrNotFound: a referenced order, order item, inventory item, payment
	// or user does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrOrderClosed: a mutating operation was attempted on a completed order.
	ErrOrderClosed = errors.New("order already completed")

	// ErrOrderCreation: the transactional order+payment creation failed and
	// was rolled back.
	ErrOrderCreation = errors.New("order creation failed")

	// ErrInvalidInput: the caller supplied a value outside the accepted domain.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials: login failed.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// translate maps repository-layer failures onto the service taxonomy.
// Service sentinels pass through untouched; a missing record becomes
// ErrNotFound; anything else is wrapped as a transient store failure that
// the caller may retry.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrOrderClosed),
		errors.Is(err, ErrInvalidInput):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("store failure: %w", err)
	}
}
