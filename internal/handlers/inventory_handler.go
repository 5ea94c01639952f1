package handlers

import (
	"net/http"
	"pos_system/internal/services"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService services.InventoryService
}

func NewInventoryHandler(inventoryService services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// ListItems returns the active selection catalog.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.inventoryService.ActiveItems()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateItem adds a catalog entry. Admin only.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item, err := h.inventoryService.CreateItem(req.Name, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// DeactivateItem soft-removes a catalog entry. Admin only.
func (h *InventoryHandler) DeactivateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeactivateItem(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": "deactivated"})
}
