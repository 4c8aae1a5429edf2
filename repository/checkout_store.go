package repository

import (
	"context"

	"checkout-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckoutTx is the set of operations available inside a checkout
// transaction. Every mutation the checkout engine performs goes through one
// CheckoutTx, so either all of them commit or none do.
type CheckoutTx interface {
	// CartWithItems loads the user's cart and its lines (products are loaded
	// separately, under lock, via LockProducts).
	CartWithItems(userID string) (*models.Cart, error)
	// LockProducts loads the given products FOR UPDATE in ascending id order,
	// so concurrent checkouts acquire row locks in the same order and cannot
	// deadlock. Validation against these rows is validation against the state
	// that will commit.
	LockProducts(ids []uuid.UUID) ([]models.Product, error)
	// CreateOrder persists the order together with its details.
	CreateOrder(order *models.Order) error
	// DecrementStock subtracts quantity from the product's stock only if
	// stock >= quantity, reporting whether the guard held. A false return
	// means a concurrent writer got there first.
	DecrementStock(productID uuid.UUID, quantity int) (bool, error)
	// ClearCart deletes every item in the cart.
	ClearCart(cartID uuid.UUID) error
}

// CheckoutStore runs a function inside a database transaction. An error
// return rolls back every effect.
type CheckoutStore interface {
	Transact(ctx context.Context, fn func(tx CheckoutTx) error) error
}

// GormCheckoutStore implements CheckoutStore on a GORM connection.
type GormCheckoutStore struct {
	db *gorm.DB
}

// NewGormCheckoutStore creates a new GormCheckoutStore.
func NewGormCheckoutStore(db *gorm.DB) CheckoutStore {
	return &GormCheckoutStore{db: db}
}

func (s *GormCheckoutStore) Transact(ctx context.Context, fn func(tx CheckoutTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutTx{tx: tx})
	})
}

type gormCheckoutTx struct {
	tx *gorm.DB
}

func (t *gormCheckoutTx) CartWithItems(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := t.tx.
		Preload("Items").
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (t *gormCheckoutTx) LockProducts(ids []uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := t.tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (t *gormCheckoutTx) CreateOrder(order *models.Order) error {
	return t.tx.Create(order).Error
}

func (t *gormCheckoutTx) DecrementStock(productID uuid.UUID, quantity int) (bool, error) {
	res := t.tx.
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (t *gormCheckoutTx) ClearCart(cartID uuid.UUID) error {
	return t.tx.Delete(&models.CartItem{}, "cart_id = ?", cartID).Error
}
