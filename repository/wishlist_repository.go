package repository

import (
	"context"

	"checkout-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository defines data access for wishlists.
type WishlistRepository interface {
	// GetOrCreate mirrors CartRepository.GetOrCreate: one wishlist per user,
	// created lazily, race-safe on the unique user_id index.
	GetOrCreate(ctx context.Context, userID string) (*models.Wishlist, error)
	// AddItem inserts (wishlistID, productID); duplicates are a no-op.
	AddItem(ctx context.Context, wishlistID, productID uuid.UUID) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

// GormWishlistRepository implements WishlistRepository using GORM.
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository.
func NewGormWishlistRepository(db *gorm.DB) WishlistRepository {
	return &GormWishlistRepository{db: db}
}

func (r *GormWishlistRepository) GetOrCreate(ctx context.Context, userID string) (*models.Wishlist, error) {
	insert := &models.Wishlist{UserID: userID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(insert).Error; err != nil {
		return nil, err
	}

	var wishlist models.Wishlist
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&wishlist).Error; err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (r *GormWishlistRepository) AddItem(ctx context.Context, wishlistID, productID uuid.UUID) error {
	item := &models.WishlistItem{WishlistID: wishlistID, ProductID: productID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wishlist_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(item).Error
}

func (r *GormWishlistRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.WishlistItem{}, "id = ?", itemID).Error
}
