package repository

import (
	"context"

	"checkout-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository defines data access for carts and cart items.
type CartRepository interface {
	// GetOrCreate returns the user's cart with items and products loaded,
	// creating an empty cart on first access. Safe under concurrent calls for
	// the same user: the insert is ON CONFLICT DO NOTHING against the unique
	// user_id index, so exactly one cart row ever exists.
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	// UpsertItem adds quantity for (cartID, productID), merging into the
	// existing line if one exists.
	UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	FindItemByID(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error)
	SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	// DeleteItem removes a cart item; deleting an absent item is a no-op.
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository.
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	insert := &models.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(insert).Error; err != nil {
		return nil, err
	}

	// Re-fetch regardless of whether the insert won the race, so the caller
	// always sees the canonical row.
	var cart models.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormCartRepository) UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error {
	item := &models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
			}),
		}).
		Create(item).Error
}

func (r *GormCartRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).
		Preload("Product").
		First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepository) SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

func (r *GormCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.CartItem{}, "id = ?", itemID).Error
}
