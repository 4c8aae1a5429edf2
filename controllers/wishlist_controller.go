package controllers

import (
	"net/http"

	"checkout-service/middleware"
	"checkout-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WishlistController handles HTTP requests for wishlist operations.
type WishlistController struct {
	wishlistService services.WishlistService
}

// NewWishlistController creates a new WishlistController.
func NewWishlistController(svc services.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: svc}
}

type addWishlistItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// GetWishlist handles GET /wishlist
func (wc *WishlistController) GetWishlist(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wishlist, err := wc.wishlistService.GetWishlist(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, wishlist)
}

// AddItem handles POST /wishlist/items
func (wc *WishlistController) AddItem(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req addWishlistItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	wishlist, err := wc.wishlistService.AddToWishlist(ctx.Request.Context(), userID, req.ProductID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, wishlist)
}

// RemoveItem handles DELETE /wishlist/items/:item_id
func (wc *WishlistController) RemoveItem(ctx *gin.Context) {
	itemID, err := uuid.Parse(ctx.Param("item_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	if err := wc.wishlistService.RemoveItem(ctx.Request.Context(), itemID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "item removed"})
}
