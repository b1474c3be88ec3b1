// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"depot/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	OrderHandler    *handler.OrderHandler
	ProductHandler  *handler.ProductHandler
	BrandHandler    *handler.BrandHandler
	RetailerHandler *handler.RetailerHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	orderHandler    *handler.OrderHandler
	productHandler  *handler.ProductHandler
	brandHandler    *handler.BrandHandler
	retailerHandler *handler.RetailerHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		orderHandler:    params.OrderHandler,
		productHandler:  params.ProductHandler,
		brandHandler:    params.BrandHandler,
		retailerHandler: params.RetailerHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	// Order management routes
	ordersGroup := apiV1.Group("/orders")
	{
		ordersGroup.POST("", r.orderHandler.CreateOrder)
		ordersGroup.GET("", r.orderHandler.ListOrders)
		ordersGroup.GET("/demand", r.orderHandler.PendingDemand)
		ordersGroup.GET("/stats", r.orderHandler.DashboardStats)
		ordersGroup.POST("/cleanup", r.orderHandler.CleanupOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.PUT("/:id", r.orderHandler.UpdateOrder)
		ordersGroup.PATCH("/:id/status", r.orderHandler.UpdateOrderStatus)
		ordersGroup.DELETE("/:id", r.orderHandler.DeleteOrder)
	}

	// Product management routes
	productsGroup := apiV1.Group("/products")
	{
		productsGroup.POST("", r.productHandler.CreateProduct)
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.PATCH("/reorder", r.productHandler.ReorderProducts)
		productsGroup.PUT("/:id", r.productHandler.UpdateProduct)
		productsGroup.DELETE("/:id", r.productHandler.DeleteProduct)
	}

	// Brand management routes
	brandsGroup := apiV1.Group("/brands")
	{
		brandsGroup.POST("", r.brandHandler.CreateBrand)
		brandsGroup.GET("", r.brandHandler.ListBrands)
		brandsGroup.POST("/reconcile", r.brandHandler.ReconcileBrands)
		brandsGroup.PUT("/:id", r.brandHandler.UpdateBrand)
		brandsGroup.DELETE("/:id", r.brandHandler.DeleteBrand)
		brandsGroup.PUT("/:id/image", r.brandHandler.UploadBrandImage)
		brandsGroup.GET("/:id/image", r.brandHandler.GetBrandImage)
	}

	// Retailer management routes
	retailersGroup := apiV1.Group("/retailers")
	{
		retailersGroup.POST("", r.retailerHandler.CreateRetailer)
		retailersGroup.GET("", r.retailerHandler.ListRetailers)
		retailersGroup.GET("/bits", r.retailerHandler.ListActiveBits)
		retailersGroup.PUT("/:id", r.retailerHandler.UpdateRetailer)
		retailersGroup.DELETE("/:id", r.retailerHandler.DeleteRetailer)
	}
}
