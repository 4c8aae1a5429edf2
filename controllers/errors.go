package controllers

import (
	"errors"
	"net/http"

	"checkout-service/services"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP responses. Business
// conditions carry enough context for a corrective message; anything else is
// an opaque infrastructure failure.
func respondError(ctx *gin.Context, err error) {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}

	var stock *services.InsufficientStockError
	if errors.As(err, &stock) {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":      stock.Error(),
			"product_id": stock.ProductID.String(),
			"remaining":  stock.Remaining,
		})
		return
	}

	var unavailable *services.ProductUnavailableError
	if errors.As(err, &unavailable) {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      unavailable.Error(),
			"product_id": unavailable.ProductID.String(),
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrEmptyCart):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, services.ErrConcurrencyConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": "checkout conflicted with a concurrent purchase, please retry"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
