package routes

import (
	"checkout-service/controllers"
	"checkout-service/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all cart, order, and wishlist routes behind the
// identity middleware.
func RegisterRoutes(r *gin.Engine, cc *controllers.CartController, oc *controllers.OrderController, wc *controllers.WishlistController) {
	cart := r.Group("/cart")
	cart.Use(middleware.AuthMiddleware())
	cart.GET("", cc.GetCart)
	cart.POST("/items", cc.AddItem)
	cart.PUT("/items/:item_id", cc.UpdateQuantity)
	cart.DELETE("/items/:item_id", cc.RemoveItem)

	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	orders.POST("/checkout", oc.Checkout)
	orders.GET("", oc.ListOrders)

	wishlist := r.Group("/wishlist")
	wishlist.Use(middleware.AuthMiddleware())
	wishlist.GET("", wc.GetWishlist)
	wishlist.POST("/items", wc.AddItem)
	wishlist.DELETE("/items/:item_id", wc.RemoveItem)
}
