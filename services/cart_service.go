package services

import (
	"context"
	"errors"

	"checkout-service/models"
	"checkout-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CartService owns the mutable cart state per user. Stock and approval checks
// here are advisory: they catch obvious mistakes at add time, but the checkout
// transaction re-validates everything against locked rows before committing.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddToCart(ctx context.Context, userID string, productID uuid.UUID, quantity int) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
}

type cartServiceImpl struct {
	carts   repository.CartRepository
	catalog repository.ProductRepository
	logger  *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(carts repository.CartRepository, catalog repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, catalog: catalog, logger: logger}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	return s.carts.GetOrCreate(ctx, userID)
}

// AddToCart validates the requested quantity against current stock and the
// product's approval status, then merges the line into the user's cart.
func (s *cartServiceImpl) AddToCart(ctx context.Context, userID string, productID uuid.UUID, quantity int) (*models.Cart, error) {
	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "product", ID: productID.String()}
		}
		return nil, err
	}

	// The requested quantity is checked against stock, not the eventual cart
	// total; the checkout re-validation is the authoritative gate.
	if quantity > product.Stock {
		return nil, &InsufficientStockError{
			ProductID: product.ID,
			Title:     product.Title,
			Requested: quantity,
			Remaining: product.Stock,
		}
	}
	if !product.Purchasable() {
		return nil, &ProductUnavailableError{
			ProductID: product.ID,
			Title:     product.Title,
			Status:    product.Status,
		}
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.UpsertItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}

	s.logger.Info("Item added to cart",
		zap.String("user_id", userID),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", quantity),
	)

	return s.carts.GetOrCreate(ctx, userID)
}

// UpdateQuantity sets a cart line's quantity. Zero or negative deletes the
// line; a quantity above current stock is rejected and the line is left
// unchanged rather than clamped.
func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	item, err := s.carts.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "cart item", ID: itemID.String()}
		}
		return err
	}

	if quantity <= 0 {
		return s.carts.DeleteItem(ctx, itemID)
	}

	if item.Product != nil && quantity > item.Product.Stock {
		return &InsufficientStockError{
			ProductID: item.ProductID,
			Title:     item.Product.Title,
			Requested: quantity,
			Remaining: item.Product.Stock,
		}
	}

	return s.carts.SetItemQuantity(ctx, itemID, quantity)
}

// RemoveItem deletes a cart line unconditionally; removing an absent line is
// a no-op.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	return s.carts.DeleteItem(ctx, itemID)
}
