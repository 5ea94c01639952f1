package services

import (
	"errors"
	"sort"
	"time"

	"pos_system/internal/models"
	"pos_system/internal/repository"

	"gorm.io/gorm"
)

// fakeStore is the in-memory backing for the fake repositories. Maps hold
// values, not pointers, so a transaction snapshot is a plain map copy.
type fakeStore struct {
	orders    map[uint]models.Order
	items     map[uint]models.OrderItem
	payments  map[uint]models.Payment
	inventory map[uint]models.InventoryItem
	seq       uint

	failPaymentCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:    make(map[uint]models.Order),
		items:     make(map[uint]models.OrderItem),
		payments:  make(map[uint]models.Payment),
		inventory: make(map[uint]models.InventoryItem),
	}
}

func (s *fakeStore) nextID() uint {
	s.seq++
	return s.seq
}

func (s *fakeStore) addInventory(name string, price float64, active bool) models.InventoryItem {
	item := models.InventoryItem{
		ID:       s.nextID(),
		Name:     name,
		Price:    price,
		IsActive: active,
	}
	s.inventory[item.ID] = item
	return item
}

type storeSnapshot struct {
	orders   map[uint]models.Order
	items    map[uint]models.OrderItem
	payments map[uint]models.Payment
	seq      uint
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		orders:   make(map[uint]models.Order, len(s.orders)),
		items:    make(map[uint]models.OrderItem, len(s.items)),
		payments: make(map[uint]models.Payment, len(s.payments)),
		seq:      s.seq,
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	for k, v := range s.payments {
		snap.payments[k] = v
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.orders = snap.orders
	s.items = snap.items
	s.payments = snap.payments
	s.seq = snap.seq
}

// fakeOrderRepo implements repository.OrderRepository against the fakeStore,
// with rollback-on-error transaction semantics.
type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) InTransaction(fn func(repository.OrderRepository) error) error {
	snap := r.store.snapshot()
	if err := fn(r); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func (r *fakeOrderRepo) CreateOrder(order *models.Order) error {
	order.ID = r.store.nextID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.store.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetOrderByID(id uint) (*models.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &order, nil
}

func (r *fakeOrderRepo) GetOrderByIDForUpdate(id uint) (*models.Order, error) {
	return r.GetOrderByID(id)
}

func (r *fakeOrderRepo) UpdateOrderStatus(id uint, status models.OrderStatus) error {
	order, ok := r.store.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = string(status)
	order.UpdatedAt = time.Now()
	r.store.orders[id] = order
	return nil
}

func (r *fakeOrderRepo) GetOrdersNotInStatus(status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range r.store.orders {
		if order.Status != string(status) {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

func (r *fakeOrderRepo) GetCompletedOrders(inventoryIDs []uint) ([]models.Order, error) {
	wanted := make(map[uint]bool, len(inventoryIDs))
	for _, id := range inventoryIDs {
		wanted[id] = true
	}

	var orders []models.Order
	for _, order := range r.store.orders {
		if order.Status != string(models.OrderCompleted) {
			continue
		}
		if len(wanted) > 0 {
			contains := false
			for _, item := range r.store.items {
				if item.OrderID == order.ID && wanted[item.InventoryID] {
					contains = true
					break
				}
			}
			if !contains {
				continue
			}
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		pi, _ := r.GetPaymentByOrderID(orders[i].ID)
		pj, _ := r.GetPaymentByOrderID(orders[j].ID)
		return pi.UpdatedAt.After(pj.UpdatedAt)
	})
	return orders, nil
}

func (r *fakeOrderRepo) CreateOrderItem(item *models.OrderItem) error {
	for _, existing := range r.store.items {
		if existing.OrderID == item.OrderID && existing.InventoryID == item.InventoryID {
			return errors.New("duplicate order item")
		}
	}
	item.ID = r.store.nextID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	r.store.items[item.ID] = *item
	return nil
}

func (r *fakeOrderRepo) GetOrderItemByID(id uint) (*models.OrderItem, error) {
	item, ok := r.store.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakeOrderRepo) GetOrderItemByIDForUpdate(id uint) (*models.OrderItem, error) {
	return r.GetOrderItemByID(id)
}

func (r *fakeOrderRepo) GetOrderItemByInventory(orderID, inventoryID uint) (*models.OrderItem, error) {
	for _, item := range r.store.items {
		if item.OrderID == orderID && item.InventoryID == inventoryID {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) GetOrderLines(orderID uint) ([]models.OrderLine, error) {
	var items []models.OrderItem
	for _, item := range r.store.items {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		inv, ok := r.store.inventory[item.InventoryID]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		lines = append(lines, models.OrderLine{Item: item, Inventory: inv})
	}
	return lines, nil
}

func (r *fakeOrderRepo) SetOrderItemActive(id uint, active bool) error {
	item, ok := r.store.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.IsActive = active
	item.UpdatedAt = time.Now()
	r.store.items[id] = item
	return nil
}

func (r *fakeOrderRepo) UpdateOrderItemQuantity(id uint, quantity int) error {
	item, ok := r.store.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	r.store.items[id] = item
	return nil
}

func (r *fakeOrderRepo) CreatePayment(payment *models.Payment) error {
	if r.store.failPaymentCreate {
		return errors.New("payment insert failed")
	}
	payment.ID = r.store.nextID()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	r.store.payments[payment.ID] = *payment
	return nil
}

func (r *fakeOrderRepo) GetPaymentByID(id uint) (*models.Payment, error) {
	payment, ok := r.store.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &payment, nil
}

func (r *fakeOrderRepo) GetPaymentByOrderID(orderID uint) (*models.Payment, error) {
	for _, payment := range r.store.payments {
		if payment.OrderID == orderID {
			found := payment
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) UpdatePaymentType(id uint, paymentType models.PaymentType) error {
	payment, ok := r.store.payments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	payment.Type = string(paymentType)
	payment.UpdatedAt = time.Now()
	r.store.payments[id] = payment
	return nil
}

func (r *fakeOrderRepo) CompletePayment(id uint, amount float64) error {
	payment, ok := r.store.payments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	payment.Amount = amount
	payment.Status = string(models.PaymentCompleted)
	payment.UpdatedAt = time.Now()
	r.store.payments[id] = payment
	return nil
}

// fakeInventoryRepo implements repository.InventoryRepository over the same
// store so order lines join against the catalog the tests seeded.
type fakeInventoryRepo struct {
	store *fakeStore
}

func (r *fakeInventoryRepo) Create(item *models.InventoryItem) error {
	item.ID = r.store.nextID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	r.store.inventory[item.ID] = *item
	return nil
}

func (r *fakeInventoryRepo) GetByID(id uint) (*models.InventoryItem, error) {
	item, ok := r.store.inventory[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakeInventoryRepo) GetByIDs(ids []uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	for _, id := range ids {
		if item, ok := r.store.inventory[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeInventoryRepo) GetActive() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	for _, item := range r.store.inventory {
		if item.IsActive {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *fakeInventoryRepo) SetActive(id uint, active bool) error {
	item, ok := r.store.inventory[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.IsActive = active
	item.UpdatedAt = time.Now()
	r.store.inventory[id] = item
	return nil
}

var (
	_ repository.OrderRepository     = (*fakeOrderRepo)(nil)
	_ repository.InventoryRepository = (*fakeInventoryRepo)(nil)
)
