package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pos_system/internal/models"
	"pos_system/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderService struct {
	createErr    error
	resumeErr    error
	toggleErr    error
	quantity     int
	quantityErr  error
	paymentErr   error
	confirmErr   error
	completed    []services.CompletedOrder
	completedErr error
	gotFilter    []uint
}

func (s *stubOrderService) CreateOrder(createdBy *uint) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Order{ID: 1, Status: string(models.OrderInitialized), CreatedBy: createdBy}, nil
}

func (s *stubOrderService) ResumeOrder(orderID uint) (*services.OrderDetails, error) {
	if s.resumeErr != nil {
		return nil, s.resumeErr
	}
	return &services.OrderDetails{Order: models.Order{ID: orderID}}, nil
}

func (s *stubOrderService) ToggleOrderItem(orderID, inventoryID uint) ([]models.OrderLine, error) {
	if s.toggleErr != nil {
		return nil, s.toggleErr
	}
	return []models.OrderLine{}, nil
}

func (s *stubOrderService) UpdateItemQuantity(orderItemID uint, direction services.QuantityDirection) (int, error) {
	if s.quantityErr != nil {
		return 0, s.quantityErr
	}
	return s.quantity, nil
}

func (s *stubOrderService) UpdatePaymentType(paymentID uint, paymentType models.PaymentType) (*models.Payment, error) {
	if s.paymentErr != nil {
		return nil, s.paymentErr
	}
	return &models.Payment{ID: paymentID, Type: string(paymentType)}, nil
}

func (s *stubOrderService) ConfirmOrder(orderID, paymentID uint) (*models.Order, error) {
	if s.confirmErr != nil {
		return nil, s.confirmErr
	}
	return &models.Order{ID: orderID, Status: string(models.OrderCompleted)}, nil
}

func (s *stubOrderService) ListUnfinishedOrders() ([]services.UnfinishedOrder, error) {
	return []services.UnfinishedOrder{}, nil
}

func (s *stubOrderService) ListCompletedOrders(inventoryIDs []uint) ([]services.CompletedOrder, error) {
	s.gotFilter = inventoryIDs
	if s.completedErr != nil {
		return nil, s.completedErr
	}
	return s.completed, nil
}

var _ services.OrderService = (*stubOrderService)(nil)

func newTestRouter(stub *stubOrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewOrderHandler(stub)

	router := gin.New()
	router.POST("/orders", handler.CreateOrder)
	router.GET("/orders/completed", handler.ListCompleted)
	router.GET("/orders/:id", handler.ResumeOrder)
	router.POST("/orders/:id/items/:inventory_id/toggle", handler.ToggleItem)
	router.POST("/orders/:id/confirm", handler.ConfirmOrder)
	router.PUT("/order-items/:id/quantity", handler.UpdateQuantity)
	return router
}

func do(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestToggleItemStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"closed order", services.ErrOrderClosed, http.StatusConflict},
		{"missing order", services.ErrNotFound, http.StatusNotFound},
		{"store outage", errors.New("connection refused"), http.StatusServiceUnavailable},
		{"ok", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubOrderService{toggleErr: tt.err})
			w := do(router, http.MethodPost, "/orders/1/items/2/toggle", nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestUpdateQuantity(t *testing.T) {
	router := newTestRouter(&stubOrderService{quantity: 3})
	w := do(router, http.MethodPut, "/order-items/5/quantity", gin.H{"direction": "INC"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Quantity int `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Quantity)

	router = newTestRouter(&stubOrderService{quantityErr: services.ErrInvalidInput})
	w = do(router, http.MethodPut, "/order-items/5/quantity", gin.H{"direction": "SIDEWAYS"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Non-numeric ids never reach the service.
	w = do(router, http.MethodPut, "/order-items/abc/quantity", gin.H{"direction": "INC"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmOrderClosedConflict(t *testing.T) {
	router := newTestRouter(&stubOrderService{confirmErr: services.ErrOrderClosed})
	w := do(router, http.MethodPost, "/orders/1/confirm", gin.H{"payment_id": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestResumeOrderNotFound(t *testing.T) {
	router := newTestRouter(&stubOrderService{resumeErr: services.ErrNotFound})
	w := do(router, http.MethodGet, "/orders/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCompletedFilterParsing(t *testing.T) {
	stub := &stubOrderService{}
	router := newTestRouter(stub)

	w := do(router, http.MethodGet, "/orders/completed?inventory_id=3&inventory_id=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{3, 7}, stub.gotFilter)

	w = do(router, http.MethodGet, "/orders/completed?inventory_id=soda", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
