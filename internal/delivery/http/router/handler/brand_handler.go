package handler

import (
	"io"
	"log/slog"
	"net/http"

	"depot/internal/delivery/http/response"
	"depot/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BrandHandlerParams holds dependencies for BrandHandler, injected by Fx.
type BrandHandlerParams struct {
	fx.In

	BrandUC usecase.BrandUsecase
	Logger  *slog.Logger
}

// BrandHandler holds dependencies for brand-related handlers
type BrandHandler struct {
	brandUC usecase.BrandUsecase
	logger  *slog.Logger
}

// NewBrandHandler is the constructor for BrandHandler
func NewBrandHandler(params BrandHandlerParams) *BrandHandler {
	return &BrandHandler{
		brandUC: params.BrandUC,
		logger:  params.Logger,
	}
}

// CreateBrandRequest represents the request body for creating a brand
type CreateBrandRequest struct {
	Name  string `json:"name" validate:"required"`
	Order int    `json:"order" validate:"min=0"`
}

// UpdateBrandRequest represents the request body for editing a brand
type UpdateBrandRequest struct {
	Name  string `json:"name" validate:"required"`
	Order int    `json:"order" validate:"min=0"`
}

// CreateBrand handles creating a brand
func (h *BrandHandler) CreateBrand(c echo.Context) error {
	var req CreateBrandRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid brand input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	brand, err := h.brandUC.CreateBrand(c.Request().Context(), &usecase.CreateBrandInput{
		Name:  req.Name,
		Order: req.Order,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, brand, "Brand created successfully")
}

// ListBrands handles listing all brands
func (h *BrandHandler) ListBrands(c echo.Context) error {
	brands, err := h.brandUC.ListBrands(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, brands, "")
}

// UpdateBrand handles editing a brand
func (h *BrandHandler) UpdateBrand(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid brand ID")
	}

	var req UpdateBrandRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid brand input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	brand, err := h.brandUC.UpdateBrand(c.Request().Context(), id, &usecase.UpdateBrandInput{
		Name:  req.Name,
		Order: req.Order,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, brand, "Brand updated successfully")
}

// DeleteBrand handles deleting a brand without products
func (h *BrandHandler) DeleteBrand(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid brand ID")
	}

	if err := h.brandUC.DeleteBrand(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Brand deleted successfully"}, "")
}

// ReconcileBrands handles the manual product-count reconciliation trigger
func (h *BrandHandler) ReconcileBrands(c echo.Context) error {
	out, err := h.brandUC.ReconcileProductCounts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out, "Reconciliation completed")
}

// UploadBrandImage handles storing a brand image sent as the raw request body
func (h *BrandHandler) UploadBrandImage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid brand ID")
	}

	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Failed to read image body")
	}
	if len(data) == 0 {
		return response.BadRequest(c, "VALIDATION_ERROR", "Image body must not be empty")
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	brand, err := h.brandUC.UploadBrandImage(c.Request().Context(), id, contentType, data)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, brand, "Brand image uploaded successfully")
}

// GetBrandImage handles serving a brand's stored image
func (h *BrandHandler) GetBrandImage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid brand ID")
	}

	data, contentType, err := h.brandUC.GetBrandImage(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, contentType, data)
}
