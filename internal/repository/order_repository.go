package repository

import (
	"pos_system/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository is the persistence contract for orders, their line items
// and their payments. InTransaction is the designated transaction scope:
// every read-modify-write the order service performs is composed inside it,
// and the ForUpdate variants take row locks so concurrent mutations of the
// same row serialize at the store.
type OrderRepository interface {
	InTransaction(fn func(OrderRepository) error) error

	CreateOrder(order *models.Order) error
	GetOrderByID(id uint) (*models.Order, error)
	GetOrderByIDForUpdate(id uint) (*models.Order, error)
	UpdateOrderStatus(id uint, status models.OrderStatus) error
	GetOrdersNotInStatus(status models.OrderStatus) ([]models.Order, error)
	GetCompletedOrders(inventoryIDs []uint) ([]models.Order, error)

	CreateOrderItem(item *models.OrderItem) error
	GetOrderItemByID(id uint) (*models.OrderItem, error)
	GetOrderItemByIDForUpdate(id uint) (*models.OrderItem, error)
	GetOrderItemByInventory(orderID, inventoryID uint) (*models.OrderItem, error)
	GetOrderLines(orderID uint) ([]models.OrderLine, error)
	SetOrderItemActive(id uint, active bool) error
	UpdateOrderItemQuantity(id uint, quantity int) error

	CreatePayment(payment *models.Payment) error
	GetPaymentByID(id uint) (*models.Payment, error)
	GetPaymentByOrderID(orderID uint) (*models.Payment, error)
	UpdatePaymentType(id uint, paymentType models.PaymentType) error
	CompletePayment(id uint, amount float64) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) InTransaction(fn func(OrderRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepository{db: tx})
	})
}

func (r *orderRepository) CreateOrder(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetOrderByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrderByIDForUpdate(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateOrderStatus(id uint, status models.OrderStatus) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) GetOrdersNotInStatus(status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("status <> ?", string(status)).Order("id DESC").Find(&orders).Error
	return orders, err
}

// GetCompletedOrders returns completed orders newest-paid first. A non-empty
// inventoryIDs restricts the result to orders containing at least one of the
// given inventory items.
func (r *orderRepository) GetCompletedOrders(inventoryIDs []uint) ([]models.Order, error) {
	query := r.db.Model(&models.Order{}).
		Joins("JOIN payments ON payments.order_id = orders.id").
		Where("orders.status = ?", string(models.OrderCompleted)).
		Order("payments.updated_at DESC")

	if len(inventoryIDs) > 0 {
		sub := r.db.Model(&models.OrderItem{}).
			Select("order_id").
			Where("inventory_id IN ?", inventoryIDs)
		query = query.Where("orders.id IN (?)", sub)
	}

	var orders []models.Order
	err := query.Find(&orders).Error
	return orders, err
}

func (r *orderRepository) CreateOrderItem(item *models.OrderItem) error {
	return r.db.Create(item).Error
}

func (r *orderRepository) GetOrderItemByID(id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderRepository) GetOrderItemByIDForUpdate(id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderRepository) GetOrderItemByInventory(orderID, inventoryID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.Where("order_id = ? AND inventory_id = ?", orderID, inventoryID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetOrderLines returns the order's items joined with their inventory rows,
// including inactive (toggled-off) items. Callers filter by Item.IsActive.
func (r *orderRepository) GetOrderLines(orderID uint) ([]models.OrderLine, error) {
	var items []models.OrderItem
	err := r.db.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.OrderLine{}, nil
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.InventoryID)
	}
	var inventory []models.InventoryItem
	if err := r.db.Where("id IN ?", ids).Find(&inventory).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.InventoryItem, len(inventory))
	for _, inv := range inventory {
		byID[inv.ID] = inv
	}

	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		inv, ok := byID[item.InventoryID]
		if !ok {
			// Inventory rows are soft-deleted at most, never removed.
			return nil, gorm.ErrRecordNotFound
		}
		lines = append(lines, models.OrderLine{Item: item, Inventory: inv})
	}
	return lines, nil
}

func (r *orderRepository) SetOrderItemActive(id uint, active bool) error {
	result := r.db.Model(&models.OrderItem{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) UpdateOrderItemQuantity(id uint, quantity int) error {
	result := r.db.Model(&models.OrderItem{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *orderRepository) GetPaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *orderRepository) GetPaymentByOrderID(orderID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *orderRepository) UpdatePaymentType(id uint, paymentType models.PaymentType) error {
	result := r.db.Model(&models.Payment{}).Where("id = ?", id).Update("payment_type", string(paymentType))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) CompletePayment(id uint, amount float64) error {
	result := r.db.Model(&models.Payment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"amount":         amount,
		"payment_status": string(models.PaymentCompleted),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
