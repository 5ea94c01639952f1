package handlers

import (
	"net/http"
	"pos_system/internal/models"
	"pos_system/internal/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder opens a new cart for the logged-in user.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var createdBy *uint
	if session := currentSession(c); session != nil {
		userID := session.UserID
		createdBy = &userID
	}

	order, err := h.orderService.CreateOrder(createdBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ResumeOrder returns an order with its lines and the active catalog so the
// client can render which items are selected.
func (h *OrderHandler) ResumeOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	details, err := h.orderService.ResumeOrder(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ToggleItem adds or removes an inventory item on the order.
func (h *OrderHandler) ToggleItem(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	inventoryID, ok := paramID(c, "inventory_id")
	if !ok {
		return
	}

	lines, err := h.orderService.ToggleOrderItem(orderID, inventoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines})
}

// UpdateQuantity increments or decrements a line quantity.
func (h *OrderHandler) UpdateQuantity(c *gin.Context) {
	itemID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Direction string `json:"direction"` // INC or DEC
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	quantity, err := h.orderService.UpdateItemQuantity(itemID, services.QuantityDirection(req.Direction))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": itemID, "quantity": quantity})
}

// UpdatePaymentType switches a payment between CASH and MPESA.
func (h *OrderHandler) UpdatePaymentType(c *gin.Context) {
	paymentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		PaymentType string `json:"payment_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	payment, err := h.orderService.UpdatePaymentType(paymentID, models.PaymentType(req.PaymentType))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// ConfirmOrder closes the order, finalizing its payment amount and status.
func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req struct {
		PaymentID uint `json:"payment_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.ConfirmOrder(orderID, req.PaymentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ListUnfinished returns in-progress orders, newest first.
func (h *OrderHandler) ListUnfinished(c *gin.Context) {
	orders, err := h.orderService.ListUnfinishedOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ListCompleted returns completed orders, newest-paid first. Repeated
// inventory_id query parameters filter to orders containing any of them.
func (h *OrderHandler) ListCompleted(c *gin.Context) {
	var inventoryIDs []uint
	for _, raw := range c.QueryArray("inventory_id") {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory_id"})
			return
		}
		inventoryIDs = append(inventoryIDs, uint(id))
	}

	orders, err := h.orderService.ListCompletedOrders(inventoryIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
