package services

import (
	"context"
	"errors"

	"checkout-service/models"
	"checkout-service/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderEventPublisher publishes order lifecycle events. Publishing is
// best-effort and never fails a checkout.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
}

// CacheInvalidator drops cached catalog entries whose stock just changed.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, ids ...uuid.UUID)
}

// CheckoutService converts a user's cart into a finalized order. The order
// row, its details, the stock decrements, and the cart clearing all commit in
// one transaction, so a concurrent checkout can never observe a half-applied
// state.
type CheckoutService interface {
	Checkout(ctx context.Context, userID string) (*models.Order, error)
}

type checkoutServiceImpl struct {
	store     repository.CheckoutStore
	publisher OrderEventPublisher
	cache     CacheInvalidator
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. publisher and cache may
// be nil when Kafka/Redis are not configured.
func NewCheckoutService(store repository.CheckoutStore, publisher OrderEventPublisher, cache CacheInvalidator, logger *zap.Logger) CheckoutService {
	return &checkoutServiceImpl{store: store, publisher: publisher, cache: cache, logger: logger}
}

// Checkout runs one checkout attempt, retrying exactly once if the commit
// lost a race with a concurrent purchase. Any other failure surfaces
// immediately with the cart untouched.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID string) (*models.Order, error) {
	order, err := s.attempt(ctx, userID)
	if errors.Is(err, ErrConcurrencyConflict) {
		s.logger.Warn("Checkout lost a stock race, retrying once", zap.String("user_id", userID))
		order, err = s.attempt(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
		zap.Int("lines", len(order.Details)),
	)

	s.afterCommit(ctx, order)
	return order, nil
}

// attempt is one full validate-then-commit pass inside a single transaction.
func (s *checkoutServiceImpl) attempt(ctx context.Context, userID string) (*models.Order, error) {
	var order *models.Order

	err := s.store.Transact(ctx, func(tx repository.CheckoutTx) error {
		cart, err := tx.CartWithItems(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		ids := make([]uuid.UUID, 0, len(cart.Items))
		for _, item := range cart.Items {
			ids = append(ids, item.ProductID)
		}
		products, err := tx.LockProducts(ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*models.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		// Validation pass: every line is checked against the locked rows
		// before anything mutates. The first failure aborts the whole
		// checkout; it is all-or-nothing across lines, not per-line.
		for _, item := range cart.Items {
			product, ok := byID[item.ProductID]
			if !ok {
				return &NotFoundError{Resource: "product", ID: item.ProductID.String()}
			}
			if !product.Purchasable() {
				return &ProductUnavailableError{
					ProductID: product.ID,
					Title:     product.Title,
					Status:    product.Status,
				}
			}
			if item.Quantity > product.Stock {
				return &InsufficientStockError{
					ProductID: product.ID,
					Title:     product.Title,
					Requested: item.Quantity,
					Remaining: product.Stock,
				}
			}
		}

		// Commit pass. Prices are taken from the locked rows, i.e. current
		// price at commit time, and snapshotted onto the details.
		total := decimal.Zero
		details := make([]models.OrderDetail, 0, len(cart.Items))
		for _, item := range cart.Items {
			product := byID[item.ProductID]
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			details = append(details, models.OrderDetail{
				ProductID:    product.ID,
				ProductTitle: product.Title,
				Quantity:     item.Quantity,
				Price:        product.Price,
			})
		}

		created := &models.Order{
			UserID:      userID,
			Status:      models.OrderStatusRegistered,
			TotalAmount: total,
			Details:     details,
		}
		if err := tx.CreateOrder(created); err != nil {
			return err
		}

		for _, item := range cart.Items {
			ok, err := tx.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			// The rows are locked, so the guard should always hold; it stays
			// as the last line of defense against oversell.
			if !ok {
				return ErrConcurrencyConflict
			}
		}

		if err := tx.ClearCart(cart.ID); err != nil {
			return err
		}

		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// afterCommit handles the best-effort side effects of a successful checkout:
// cache invalidation for the purchased products and the order.placed event.
func (s *checkoutServiceImpl) afterCommit(ctx context.Context, order *models.Order) {
	if s.cache != nil {
		ids := make([]uuid.UUID, 0, len(order.Details))
		for _, d := range order.Details {
			ids = append(ids, d.ProductID)
		}
		s.cache.Invalidate(ctx, ids...)
	}

	if s.publisher == nil {
		return
	}
	items := make([]models.OrderEventItem, 0, len(order.Details))
	for _, d := range order.Details {
		items = append(items, models.OrderEventItem{
			ProductID: d.ProductID.String(),
			Quantity:  d.Quantity,
			Price:     d.Price.StringFixed(2),
		})
	}
	event := models.OrderPlacedEvent{
		Event:       "order.placed",
		OrderID:     order.ID.String(),
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount.StringFixed(2),
		Items:       items,
		Timestamp:   order.CreatedAt,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish order.placed event",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}
