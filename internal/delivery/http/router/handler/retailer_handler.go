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

// RetailerHandlerParams holds dependencies for RetailerHandler, injected by Fx.
type RetailerHandlerParams struct {
	fx.In

	RetailerUC usecase.RetailerUsecase
	Logger     *slog.Logger
}

// RetailerHandler holds dependencies for retailer-related handlers
type RetailerHandler struct {
	retailerUC usecase.RetailerUsecase
	logger     *slog.Logger
}

// NewRetailerHandler is the constructor for RetailerHandler
func NewRetailerHandler(params RetailerHandlerParams) *RetailerHandler {
	return &RetailerHandler{
		retailerUC: params.RetailerUC,
		logger:     params.Logger,
	}
}

// CreateRetailerRequest represents the request body for registering a retailer
type CreateRetailerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,e164"`
	Bit   string `json:"bit" validate:"required"`
}

// UpdateRetailerRequest represents the request body for editing a retailer
type UpdateRetailerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,e164"`
	Bit   string `json:"bit" validate:"required"`
}

// CreateRetailer handles registering a retailer
func (h *RetailerHandler) CreateRetailer(c echo.Context) error {
	var req CreateRetailerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid retailer input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	retailer, err := h.retailerUC.CreateRetailer(c.Request().Context(), &usecase.CreateRetailerInput{
		Name:  req.Name,
		Phone: req.Phone,
		Bit:   req.Bit,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, retailer, "Retailer created successfully")
}

// ListRetailers handles listing all retailers
func (h *RetailerHandler) ListRetailers(c echo.Context) error {
	retailers, err := h.retailerUC.ListRetailers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, retailers, "")
}

// ListActiveBits handles listing the distinct territory tags in use
func (h *RetailerHandler) ListActiveBits(c echo.Context) error {
	bits, err := h.retailerUC.ListActiveBits(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, bits, "")
}

// UpdateRetailer handles editing a retailer
func (h *RetailerHandler) UpdateRetailer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid retailer ID")
	}

	var req UpdateRetailerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid retailer input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	retailer, err := h.retailerUC.UpdateRetailer(c.Request().Context(), id, &usecase.UpdateRetailerInput{
		Name:  req.Name,
		Phone: req.Phone,
		Bit:   req.Bit,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, retailer, "Retailer updated successfully")
}

// DeleteRetailer handles deleting a retailer
func (h *RetailerHandler) DeleteRetailer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid retailer ID")
	}

	if err := h.retailerUC.DeleteRetailer(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Retailer deleted successfully"}, "")
}
