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

// WishlistService manages the per-user wishlist. Only approved products may
// be wishlisted; adding the same product twice is a no-op.
type WishlistService interface {
	GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error)
	AddToWishlist(ctx context.Context, userID string, productID uuid.UUID) (*models.Wishlist, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
}

type wishlistServiceImpl struct {
	wishlists repository.WishlistRepository
	catalog   repository.ProductRepository
	logger    *zap.Logger
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlists repository.WishlistRepository, catalog repository.ProductRepository, logger *zap.Logger) WishlistService {
	return &wishlistServiceImpl{wishlists: wishlists, catalog: catalog, logger: logger}
}

func (s *wishlistServiceImpl) GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error) {
	return s.wishlists.GetOrCreate(ctx, userID)
}

func (s *wishlistServiceImpl) AddToWishlist(ctx context.Context, userID string, productID uuid.UUID) (*models.Wishlist, error) {
	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "product", ID: productID.String()}
		}
		return nil, err
	}
	if !product.Purchasable() {
		return nil, &ProductUnavailableError{
			ProductID: product.ID,
			Title:     product.Title,
			Status:    product.Status,
		}
	}

	wishlist, err := s.wishlists.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.wishlists.AddItem(ctx, wishlist.ID, productID); err != nil {
		return nil, err
	}

	s.logger.Info("Item added to wishlist",
		zap.String("user_id", userID),
		zap.String("product_id", productID.String()),
	)

	return s.wishlists.GetOrCreate(ctx, userID)
}

func (s *wishlistServiceImpl) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	return s.wishlists.DeleteItem(ctx, itemID)
}
