package services

import (
	"errors"
	"fmt"
	"log"
	"pos_system/internal/models"
	"pos_system/internal/repository"

	"gorm.io/gorm"
)

type QuantityDirection string

const (
	QuantityInc QuantityDirection = "INC"
	QuantityDec QuantityDirection = "DEC"
)

// OrderDetails is the resume view: the order, all of its lines (active flag
// visible so the caller can render selection state) and the active catalog.
type OrderDetails struct {
	Order   models.Order           `json:"order"`
	Lines   []models.OrderLine     `json:"lines"`
	Catalog []models.InventoryItem `json:"catalog"`
}

type UnfinishedOrder struct {
	Order models.Order       `json:"order"`
	Lines []models.OrderLine `json:"lines"`
}

type CompletedOrder struct {
	Order   models.Order       `json:"order"`
	Lines   []models.OrderLine `json:"lines"`
	Payment models.Payment     `json:"payment"`
}

// ReceiptNotifier pushes a best-effort receipt after a confirmed M-Pesa
// payment. Failures are logged, never surfaced to the caller.
type ReceiptNotifier interface {
	SendReceipt(orderID uint, amount float64) error
}

// OrderService owns the order lifecycle: creation, item toggling, quantity
// adjustment, payment-type selection and the single irreversible transition,
// confirmation. Every read-modify-write runs inside one repository
// transaction so concurrent edits of the same order serialize at the store.
type OrderService interface {
	CreateOrder(createdBy *uint) (*models.Order, error)
	ResumeOrder(orderID uint) (*OrderDetails, error)
	ToggleOrderItem(orderID, inventoryID uint) ([]models.OrderLine, error)
	UpdateItemQuantity(orderItemID uint, direction QuantityDirection) (int, error)
	UpdatePaymentType(paymentID uint, paymentType models.PaymentType) (*models.Payment, error)
	ConfirmOrder(orderID, paymentID uint) (*models.Order, error)
	ListUnfinishedOrders() ([]UnfinishedOrder, error)
	ListCompletedOrders(inventoryIDs []uint) ([]CompletedOrder, error)
}

type orderService struct {
	orderRepo     repository.OrderRepository
	inventoryRepo repository.InventoryRepository
	notifier      ReceiptNotifier
}

// NewOrderService wires the lifecycle manager. notifier may be nil when no
// receipt push is configured.
func NewOrderService(orderRepo repository.OrderRepository, inventoryRepo repository.InventoryRepository, notifier ReceiptNotifier) OrderService {
	return &orderService{orderRepo: orderRepo, inventoryRepo: inventoryRepo, notifier: notifier}
}

// CreateOrder inserts a new order and its payment in one transaction. The
// payment starts at amount 0, type CASH, status INITIALIZED; if either
// insert fails the whole creation rolls back.
func (s *orderService) CreateOrder(createdBy *uint) (*models.Order, error) {
	order := &models.Order{
		Status:    string(models.OrderInitialized),
		CreatedBy: createdBy,
	}
	err := s.orderRepo.InTransaction(func(tx repository.OrderRepository) error {
		if err := tx.CreateOrder(order); err != nil {
			return err
		}
		payment := &models.Payment{
			OrderID: order.ID,
			Amount:  0,
			Type:    string(models.PaymentCash),
			Status:  string(models.PaymentInitialized),
		}
		return tx.CreatePayment(payment)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}
	return order, nil
}

// ResumeOrder fetches an order together with its lines and the active
// catalog so the caller can render which items are already selected.
func (s *orderService) ResumeOrder(orderID uint) (*OrderDetails, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, translate(err)
	}
	lines, err := s.orderRepo.GetOrderLines(orderID)
	if err != nil {
		return nil, translate(err)
	}
	catalog, err := s.inventoryRepo.GetActive()
	if err != nil {
		return nil, translate(err)
	}
	return &OrderDetails{Order: *order, Lines: lines, Catalog: catalog}, nil
}

// ToggleOrderItem is the idempotent add/remove action: a missing line is
// created at quantity 1, an active line is deactivated (quantity kept), an
// inactive line is reactivated. The uniqueness lookup and the write share a
// transaction so repeated calls can never duplicate a row.
func (s *orderService) ToggleOrderItem(orderID, inventoryID uint) ([]models.OrderLine, error) {
	if _, err := s.inventoryRepo.GetByID(inventoryID); err != nil {
		return nil, translate(err)
	}

	err := s.orderRepo.InTransaction(func(tx repository.OrderRepository) error {
		order, err := tx.GetOrderByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order.Completed() {
			return ErrOrderClosed
		}

		item, err := tx.GetOrderItemByInventory(orderID, inventoryID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.CreateOrderItem(&models.OrderItem{
				OrderID:     orderID,
				InventoryID: inventoryID,
				Quantity:    1,
				IsActive:    true,
			})
		}
		if err != nil {
			return err
		}
		return tx.SetOrderItemActive(item.ID, !item.IsActive)
	})
	if err != nil {
		return nil, translate(err)
	}

	lines, err := s.orderRepo.GetOrderLines(orderID)
	if err != nil {
		return nil, translate(err)
	}
	return lines, nil
}

// UpdateItemQuantity increments or decrements a line's quantity. DEC floors
// at 1 and never deactivates the line. The row is locked for the whole
// read-modify-write so concurrent adjustments cannot lose an update.
func (s *orderService) UpdateItemQuantity(orderItemID uint, direction QuantityDirection) (int, error) {
	var quantity int
	err := s.orderRepo.InTransaction(func(tx repository.OrderRepository) error {
		item, err := tx.GetOrderItemByIDForUpdate(orderItemID)
		if err != nil {
			return err
		}
		order, err := tx.GetOrderByID(item.OrderID)
		if err != nil {
			return err
		}
		if order.Completed() {
			return ErrOrderClosed
		}

		switch direction {
		case QuantityInc:
			item.Quantity++
		case QuantityDec:
			if item.Quantity > 1 {
				item.Quantity--
			}
		default:
			return fmt.Errorf("%w: unknown quantity direction %q", ErrInvalidInput, direction)
		}
		quantity = item.Quantity
		return tx.UpdateOrderItemQuantity(item.ID, item.Quantity)
	})
	if err != nil {
		return 0, translate(err)
	}
	return quantity, nil
}

// UpdatePaymentType overwrites the payment type. Guarded: once the owning
// order is completed the payment record is frozen along with it.
func (s *orderService) UpdatePaymentType(paymentID uint, paymentType models.PaymentType) (*models.Payment, error) {
	if !models.ValidPaymentType(string(paymentType)) {
		return nil, fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, paymentType)
	}

	var updated *models.Payment
	err := s.orderRepo.InTransaction(func(tx repository.OrderRepository) error {
		payment, err := tx.GetPaymentByID(paymentID)
		if err != nil {
			return err
		}
		order, err := tx.GetOrderByID(payment.OrderID)
		if err != nil {
			return err
		}
		if order.Completed() {
			return ErrOrderClosed
		}
		if err := tx.UpdatePaymentType(payment.ID, paymentType); err != nil {
			return err
		}
		payment.Type = string(paymentType)
		updated = payment
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// ConfirmOrder is the single irreversible transition. It totals the active
// lines, marks the order COMPLETED and the payment COMPLETED with that
// amount, all in one transaction; a second confirmation fails with
// ErrOrderClosed.
func (s *orderService) ConfirmOrder(orderID, paymentID uint) (*models.Order, error) {
	var (
		confirmed   *models.Order
		payment     *models.Payment
		totalAmount float64
	)
	err := s.orderRepo.InTransaction(func(tx repository.OrderRepository) error {
		order, err := tx.GetOrderByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order.Completed() {
			return ErrOrderClosed
		}

		p, err := tx.GetPaymentByID(paymentID)
		if err != nil {
			return err
		}
		if p.OrderID != order.ID {
			return fmt.Errorf("%w: payment %d does not belong to order %d", ErrNotFound, paymentID, orderID)
		}

		lines, err := tx.GetOrderLines(orderID)
		if err != nil {
			return err
		}
		totalAmount = ComputeTotal(ActiveLines(lines))

		if err := tx.UpdateOrderStatus(order.ID, models.OrderCompleted); err != nil {
			return err
		}
		if err := tx.CompletePayment(p.ID, totalAmount); err != nil {
			return err
		}

		order.Status = string(models.OrderCompleted)
		confirmed = order
		payment = p
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	if s.notifier != nil && payment.Type == string(models.PaymentMpesa) {
		if err := s.notifier.SendReceipt(confirmed.ID, totalAmount); err != nil {
			log.Printf("Warning: failed to push M-Pesa receipt for order %d: %v", confirmed.ID, err)
		}
	}
	return confirmed, nil
}

// ListUnfinishedOrders returns every order that has not completed, newest
// first, each with its active lines.
func (s *orderService) ListUnfinishedOrders() ([]UnfinishedOrder, error) {
	orders, err := s.orderRepo.GetOrdersNotInStatus(models.OrderCompleted)
	if err != nil {
		return nil, translate(err)
	}
	result := make([]UnfinishedOrder, 0, len(orders))
	for _, order := range orders {
		lines, err := s.orderRepo.GetOrderLines(order.ID)
		if err != nil {
			return nil, translate(err)
		}
		result = append(result, UnfinishedOrder{Order: order, Lines: ActiveLines(lines)})
	}
	return result, nil
}

// ListCompletedOrders returns completed orders newest-paid first. A
// non-empty inventoryIDs restricts to orders containing at least one of the
// given items.
func (s *orderService) ListCompletedOrders(inventoryIDs []uint) ([]CompletedOrder, error) {
	orders, err := s.orderRepo.GetCompletedOrders(inventoryIDs)
	if err != nil {
		return nil, translate(err)
	}
	result := make([]CompletedOrder, 0, len(orders))
	for _, order := range orders {
		lines, err := s.orderRepo.GetOrderLines(order.ID)
		if err != nil {
			return nil, translate(err)
		}
		payment, err := s.orderRepo.GetPaymentByOrderID(order.ID)
		if err != nil {
			return nil, translate(err)
		}
		result = append(result, CompletedOrder{
			Order:   order,
			Lines:   ActiveLines(lines),
			Payment: *payment,
		})
	}
	return result, nil
}
