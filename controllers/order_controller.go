package controllers

import (
	"net/http"
	"strconv"

	"checkout-service/middleware"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
)

// OrderController handles HTTP requests for checkout and order history.
type OrderController struct {
	checkoutService services.CheckoutService
	orderService    services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(checkout services.CheckoutService, orders services.OrderService) *OrderController {
	return &OrderController{checkoutService: checkout, orderService: orders}
}

// Checkout handles POST /orders/checkout
func (oc *OrderController) Checkout(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := oc.checkoutService.Checkout(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListOrders handles GET /orders
func (oc *OrderController) ListOrders(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, limit := parsePaginationParams(ctx)
	resp, err := oc.orderService.ListOrders(ctx.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// parsePaginationParams extracts and validates page/limit query params.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	const maxLimit = 100
	pageInt, limitInt := 1, 10
	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(ctx.DefaultQuery("limit", "10")); err == nil && l > 0 {
		if l > maxLimit {
			l = maxLimit
		}
		limitInt = l
	}
	return pageInt, limitInt
}
