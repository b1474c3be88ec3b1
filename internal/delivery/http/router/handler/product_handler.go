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

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for product-related handlers
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name    string    `json:"name" validate:"required"`
	BrandID uuid.UUID `json:"brand_id" validate:"required"`
	Order   int       `json:"order" validate:"min=0"`
}

// UpdateProductRequest represents the request body for editing a product
type UpdateProductRequest struct {
	Name    string    `json:"name" validate:"required"`
	BrandID uuid.UUID `json:"brand_id" validate:"required"`
	Order   int       `json:"order" validate:"min=0"`
}

// ProductRankRequest is one entry of a batch rank update
type ProductRankRequest struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Order int       `json:"order" validate:"min=0"`
}

// ReorderProductsRequest represents the request body for a batch rank update
type ReorderProductsRequest struct {
	Ranks []ProductRankRequest `json:"ranks" validate:"required,min=1,dive"`
}

// CreateProduct handles creating a product under a brand
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.productUC.CreateProduct(c.Request().Context(), &usecase.CreateProductInput{
		Name:    req.Name,
		BrandID: req.BrandID,
		Order:   req.Order,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// ListProducts handles listing products, optionally restricted to one brand
func (h *ProductHandler) ListProducts(c echo.Context) error {
	var brandID *uuid.UUID
	if raw := c.QueryParam("brand_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid brand ID")
		}
		brandID = &id
	}

	products, err := h.productUC.ListProducts(c.Request().Context(), brandID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// UpdateProduct handles editing a product, including moving it to another brand
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.productUC.UpdateProduct(c.Request().Context(), id, &usecase.UpdateProductInput{
		Name:    req.Name,
		BrandID: req.BrandID,
		Order:   req.Order,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// ReorderProducts handles a batch of display-rank updates
func (h *ProductHandler) ReorderProducts(c echo.Context) error {
	var req ReorderProductsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reorder input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	ranks := make([]usecase.ProductRankInput, 0, len(req.Ranks))
	for _, rank := range req.Ranks {
		ranks = append(ranks, usecase.ProductRankInput{
			ID:    rank.ID,
			Order: rank.Order,
		})
	}

	if err := h.productUC.ReorderProducts(c.Request().Context(), ranks); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Products reordered successfully"}, "")
}

// DeleteProduct handles deleting a product
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product ID")
	}

	if err := h.productUC.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Product deleted successfully"}, "")
}
