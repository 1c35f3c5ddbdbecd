package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type fakeCarts struct {
	cartOf map[string]string
	items  map[string][]models.CartItem
	nextID int
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{cartOf: map[string]string{}, items: map[string][]models.CartItem{}}
}

func (f *fakeCarts) EnsureCart(_ context.Context, userID string) (*models.Cart, error) {
	id, ok := f.cartOf[userID]
	if !ok {
		id = "cart-" + userID
		f.cartOf[userID] = id
	}
	return &models.Cart{ID: id, UserID: userID}, nil
}

func (f *fakeCarts) Items(_ context.Context, cartID string) ([]models.CartItem, error) {
	return f.items[cartID], nil
}

func (f *fakeCarts) AddItem(_ context.Context, cartID, productID string, quantity int) error {
	for i, it := range f.items[cartID] {
		if it.ProductID == productID {
			f.items[cartID][i].Quantity += quantity
			return nil
		}
	}
	f.nextID++
	f.items[cartID] = append(f.items[cartID], models.CartItem{
		ID: "item-" + strconv.Itoa(f.nextID), CartID: cartID, ProductID: productID, Quantity: quantity,
	})
	return nil
}

func (f *fakeCarts) owned(userID, itemID string) (string, int) {
	cartID := f.cartOf[userID]
	for i, it := range f.items[cartID] {
		if it.ID == itemID {
			return cartID, i
		}
	}
	return "", -1
}

func (f *fakeCarts) UpdateItemQuantity(_ context.Context, userID, itemID string, quantity int) (bool, error) {
	cartID, i := f.owned(userID, itemID)
	if i < 0 {
		return false, nil
	}
	f.items[cartID][i].Quantity = quantity
	return true, nil
}

func (f *fakeCarts) RemoveItem(_ context.Context, userID, itemID string) (bool, error) {
	cartID, i := f.owned(userID, itemID)
	if i < 0 {
		return false, nil
	}
	f.items[cartID] = append(f.items[cartID][:i], f.items[cartID][i+1:]...)
	return true, nil
}

func (f *fakeCarts) ItemCount(_ context.Context, userID string) (int, error) {
	n := 0
	for _, it := range f.items[f.cartOf[userID]] {
		n += it.Quantity
	}
	return n, nil
}

// joinedCarts joins items to products the way the repository does.
type joinedCarts struct {
	*fakeCarts
	products *fakeProducts
}

func (j joinedCarts) Items(ctx context.Context, cartID string) ([]models.CartItem, error) {
	items, _ := j.fakeCarts.Items(ctx, cartID)
	out := make([]models.CartItem, len(items))
	for i, it := range items {
		it.Product = j.products.byID[it.ProductID]
		out[i] = it
	}
	return out, nil
}

func cartFixture(campaigns ...models.Campaign) (*CartService, *fakeCarts) {
	products := newFakeProducts(
		models.Product{ID: sneakID, Name: "Sneaker", Price: dec("100.00"), CategoryID: shoesID},
		models.Product{ID: capID, Name: "Cap", Price: dec("20.00"), CategoryID: hatsID},
	)
	carts := newFakeCarts()
	svc := NewCartService(joinedCarts{carts, products}, products, staticCampaigns(campaigns), zap.NewNop())
	return svc, carts
}

func TestAddToCartMergesLines(t *testing.T) {
	sale := window(models.Campaign{
		ID: "sale", Name: "Shoes", Type: models.PercentageDiscount,
		DiscountValue: nullDec("25"), CategoryIDs: []string{shoesID},
	})
	svc, _ := cartFixture(sale)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, customerID, models.AddToCartInput{ProductID: sneakID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, customerID, models.AddToCartInput{ProductID: capID, Quantity: 2})
	require.NoError(t, err)
	view, err := svc.AddToCart(ctx, customerID, models.AddToCartInput{ProductID: sneakID, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, view.Lines, 2)
	sneaker := view.Lines[0]
	assert.Equal(t, 3, sneaker.Quantity)
	assert.True(t, dec("75").Equal(sneaker.UnitPrice))
	assert.True(t, dec("225").Equal(sneaker.LineTotal))
	assert.Equal(t, "sale", sneaker.CampaignID)
	assert.Equal(t, []string{"25% OFF"}, sneaker.Badges)

	assert.True(t, dec("265").Equal(view.Subtotal))

	n, err := svc.ItemCount(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestAddToCartRejects(t *testing.T) {
	svc, _ := cartFixture()
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, customerID, models.AddToCartInput{ProductID: "99999999-9999-9999-9999-999999999999", Quantity: 1})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.AddToCart(ctx, customerID, models.AddToCartInput{ProductID: sneakID, Quantity: 0})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.AddToCart(ctx, "", models.AddToCartInput{ProductID: sneakID, Quantity: 1})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestCartItemOfAnotherUserIsNotFound(t *testing.T) {
	svc, carts := cartFixture()
	ctx := context.Background()

	view, err := svc.AddToCart(ctx, customerID, models.AddToCartInput{ProductID: capID, Quantity: 1})
	require.NoError(t, err)
	itemID := view.Lines[0].ID

	_, err = svc.UpdateQuantity(ctx, otherID, itemID, models.UpdateQuantityInput{Quantity: 4})
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = svc.RemoveFromCart(ctx, otherID, itemID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 1, carts.items[carts.cartOf[customerID]][0].Quantity)

	view, err = svc.UpdateQuantity(ctx, customerID, itemID, models.UpdateQuantityInput{Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, view.Lines[0].Quantity)

	view, err = svc.RemoveFromCart(ctx, customerID, itemID)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.Subtotal.IsZero())
}

func TestItemCountWithoutCart(t *testing.T) {
	svc, _ := cartFixture()

	n, err := svc.ItemCount(context.Background(), customerID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
