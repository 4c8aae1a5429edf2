package services_test

import (
	"context"
	"testing"

	"checkout-service/models"
	"checkout-service/repository"
	"checkout-service/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mock repositories ---

type mockProductRepo struct {
	products map[uuid.UUID]*models.Product
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

type mockCartRepo struct {
	products  map[uuid.UUID]*models.Product
	carts     map[string]*models.Cart
	getCreate int
}

func newMockCartRepo(products map[uuid.UUID]*models.Product) *mockCartRepo {
	return &mockCartRepo{products: products, carts: make(map[string]*models.Cart)}
}

func (m *mockCartRepo) GetOrCreate(_ context.Context, userID string) (*models.Cart, error) {
	m.getCreate++
	if cart, ok := m.carts[userID]; ok {
		return cart, nil
	}
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	m.carts[userID] = cart
	return cart, nil
}

func (m *mockCartRepo) UpsertItem(_ context.Context, cartID, productID uuid.UUID, quantity int) error {
	for _, cart := range m.carts {
		if cart.ID != cartID {
			continue
		}
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity += quantity
				return nil
			}
		}
		cart.Items = append(cart.Items, models.CartItem{
			ID:        uuid.New(),
			CartID:    cartID,
			ProductID: productID,
			Product:   m.products[productID],
			Quantity:  quantity,
		})
	}
	return nil
}

func (m *mockCartRepo) FindItemByID(_ context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	for _, cart := range m.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				item := cart.Items[i]
				item.Product = m.products[item.ProductID]
				return &item, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCartRepo) SetItemQuantity(_ context.Context, itemID uuid.UUID, quantity int) error {
	for _, cart := range m.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items[i].Quantity = quantity
			}
		}
	}
	return nil
}

func (m *mockCartRepo) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	for _, cart := range m.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// --- Helpers ---

func newCartService(carts repository.CartRepository, products map[uuid.UUID]*models.Product) services.CartService {
	logger, _ := zap.NewDevelopment()
	return services.NewCartService(carts, &mockProductRepo{products: products}, logger)
}

func productMap(products ...*models.Product) map[uuid.UUID]*models.Product {
	m := make(map[uuid.UUID]*models.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

// --- Tests ---

func TestAddToCart_Success(t *testing.T) {
	p := approvedProduct("Gadget", "20.00", 3)
	products := productMap(p)
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	cart, err := svc.AddToCart(context.Background(), "user-1", p.ID, 2)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddToCart_MergesExistingLine(t *testing.T) {
	p := approvedProduct("Gadget", "20.00", 10)
	products := productMap(p)
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	_, err := svc.AddToCart(context.Background(), "user-1", p.ID, 2)
	assert.NoError(t, err)
	cart, err := svc.AddToCart(context.Background(), "user-1", p.ID, 3)
	assert.NoError(t, err)

	// One line per (cart, product), quantities merged.
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddToCart_ProductNotFound(t *testing.T) {
	products := productMap()
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	_, err := svc.AddToCart(context.Background(), "user-1", uuid.New(), 1)

	var notFound *services.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "product", notFound.Resource)
}

func TestAddToCart_InsufficientStock(t *testing.T) {
	p := approvedProduct("Scarce", "20.00", 2)
	products := productMap(p)
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	_, err := svc.AddToCart(context.Background(), "user-1", p.ID, 5)

	var stockErr *services.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Remaining)
	assert.Empty(t, repo.carts)
}

func TestAddToCart_RequestedQuantityNotCartTotal(t *testing.T) {
	// Stock 3, cart already holds 2: a further add of 2 is allowed at cart
	// time because only the requested quantity is checked. The checkout
	// re-validation is the authoritative gate.
	p := approvedProduct("Gadget", "20.00", 3)
	products := productMap(p)
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	_, err := svc.AddToCart(context.Background(), "user-1", p.ID, 2)
	assert.NoError(t, err)
	cart, err := svc.AddToCart(context.Background(), "user-1", p.ID, 2)
	assert.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestAddToCart_UnapprovedProduct(t *testing.T) {
	p := approvedProduct("Pending", "20.00", 5)
	p.Status = models.ProductStatusPending
	products := productMap(p)
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	_, err := svc.AddToCart(context.Background(), "user-1", p.ID, 1)

	var unavailable *services.ProductUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, models.ProductStatusPending, unavailable.Status)
}

func TestGetCart_CreatesLazilyOnce(t *testing.T) {
	products := productMap()
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	first, err := svc.GetCart(context.Background(), "user-1")
	assert.NoError(t, err)
	second, err := svc.GetCart(context.Background(), "user-1")
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.carts, 1)
}

func TestUpdateQuantity_SetsNewValue(t *testing.T) {
	p := approvedProduct("Gadget", "20.00", 10)
	products := productMap(p)
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	cart, _ := svc.AddToCart(context.Background(), "user-1", p.ID, 2)
	itemID := cart.Items[0].ID

	err := svc.UpdateQuantity(context.Background(), itemID, 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, repo.carts["user-1"].Items[0].Quantity)
}

func TestUpdateQuantity_ZeroDeletesItem(t *testing.T) {
	p := approvedProduct("Gadget", "20.00", 10)
	products := productMap(p)
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	cart, _ := svc.AddToCart(context.Background(), "user-1", p.ID, 2)
	itemID := cart.Items[0].ID

	err := svc.UpdateQuantity(context.Background(), itemID, 0)
	assert.NoError(t, err)
	assert.Empty(t, repo.carts["user-1"].Items)
}

func TestUpdateQuantity_RejectsAboveStock(t *testing.T) {
	p := approvedProduct("Gadget", "20.00", 3)
	products := productMap(p)
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	cart, _ := svc.AddToCart(context.Background(), "user-1", p.ID, 2)
	itemID := cart.Items[0].ID

	err := svc.UpdateQuantity(context.Background(), itemID, 5)

	var stockErr *services.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Remaining)
	// Rejected, not clamped: the line keeps its previous quantity.
	assert.Equal(t, 2, repo.carts["user-1"].Items[0].Quantity)
}

func TestUpdateQuantity_ItemNotFound(t *testing.T) {
	products := productMap()
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	err := svc.UpdateQuantity(context.Background(), uuid.New(), 1)

	var notFound *services.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRemoveItem_Idempotent(t *testing.T) {
	p := approvedProduct("Gadget", "20.00", 10)
	products := productMap(p)
	repo := newMockCartRepo(products)
	svc := newCartService(repo, products)

	cart, _ := svc.AddToCart(context.Background(), "user-1", p.ID, 2)
	itemID := cart.Items[0].ID

	assert.NoError(t, svc.RemoveItem(context.Background(), itemID))
	// Removing an absent item is a no-op, not an error.
	assert.NoError(t, svc.RemoveItem(context.Background(), itemID))
	assert.Empty(t, repo.carts["user-1"].Items)
}
