package handler

import (
	"log/slog"
	"net/http"

	"depot/internal/delivery/http/response"
	"depot/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// OrderItemRequest is one requested line of a new order
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Unit      string    `json:"unit" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	CounterName string             `json:"counter_name" validate:"required"`
	Bit         string             `json:"bit" validate:"required"`
	Date        string             `json:"date"`
	Time        string             `json:"time"`
	TotalAmount float64            `json:"total_amount" validate:"min=0"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderItemRequest is one full line of an order edit, snapshots included
type UpdateOrderItemRequest struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	ProductName string    `json:"product_name" validate:"required"`
	BrandName   string    `json:"brand_name" validate:"required"`
	Unit        string    `json:"unit" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required,min=1"`
}

// UpdateOrderRequest represents the request body for a full order edit
type UpdateOrderRequest struct {
	CounterName string                   `json:"counter_name" validate:"required"`
	Bit         string                   `json:"bit" validate:"required"`
	Status      string                   `json:"status" validate:"required"`
	Date        string                   `json:"date" validate:"required"`
	Time        string                   `json:"time" validate:"required"`
	TotalAmount float64                  `json:"total_amount" validate:"min=0"`
	Items       []UpdateOrderItemRequest `json:"items" validate:"dive"`
}

// UpdateOrderStatusRequest represents the request body for a status transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CleanupOrdersRequest represents the request body for the retention sweep
type CleanupOrdersRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" validate:"required,min=1"`
}

// CreateOrder handles placing a new order
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: item.ProductID,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), &usecase.CreateOrderInput{
		CounterName: req.CounterName,
		Bit:         req.Bit,
		Date:        req.Date,
		Time:        req.Time,
		TotalAmount: req.TotalAmount,
		Items:       items,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// ListOrders handles listing orders with optional bit, status and search filters
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderUC.ListOrders(c.Request().Context(), &usecase.OrderListInput{
		Bit:    c.QueryParam("bit"),
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// GetOrder handles retrieving one order with its line items
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// UpdateOrder handles a full order edit
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	items := make([]usecase.OrderItemEdit, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemEdit{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			BrandName:   item.BrandName,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
		})
	}

	order, err := h.orderUC.UpdateOrder(c.Request().Context(), id, &usecase.UpdateOrderInput{
		CounterName: req.CounterName,
		Bit:         req.Bit,
		Status:      req.Status,
		Date:        req.Date,
		Time:        req.Time,
		TotalAmount: req.TotalAmount,
		Items:       items,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order updated successfully")
}

// UpdateOrderStatus handles an order status transition
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// DeleteOrder handles deleting one order
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	if err := h.orderUC.DeleteOrder(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Order deleted successfully"}, "")
}

// PendingDemand handles the pending-demand aggregation with optional bit and brand filters
func (h *OrderHandler) PendingDemand(c echo.Context) error {
	summary, err := h.orderUC.PendingDemand(c.Request().Context(), &usecase.DemandInput{
		Bit:   c.QueryParam("bit"),
		Brand: c.QueryParam("brand"),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary, "")
}

// DashboardStats handles the order-book summary
func (h *OrderHandler) DashboardStats(c echo.Context) error {
	stats, err := h.orderUC.DashboardStats(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// CleanupOrders handles the retention sweep over the given candidate orders
func (h *OrderHandler) CleanupOrders(c echo.Context) error {
	var req CleanupOrdersRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cleanup input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	out, err := h.orderUC.CleanupCompletedOrders(c.Request().Context(), req.OrderIDs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out, "")
}

// HealthCheck is the liveness endpoint.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
