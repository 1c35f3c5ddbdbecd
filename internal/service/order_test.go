package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type fakeCheckoutCarts struct {
	cartID  string
	items   []models.CartItem
	cleared bool
}

func (f *fakeCheckoutCarts) LockByUser(context.Context, *sql.Tx, string) (string, error) {
	return f.cartID, nil
}

func (f *fakeCheckoutCarts) ItemsTx(context.Context, *sql.Tx, string) ([]models.CartItem, error) {
	return f.items, nil
}

func (f *fakeCheckoutCarts) ClearTx(context.Context, *sql.Tx, string) error {
	f.cleared = true
	return nil
}

type fakeOrders struct {
	addresses  []models.Address
	orders     map[string]models.Order
	payments   []models.Payment
	paymentErr error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[string]models.Order{}}
}

func (f *fakeOrders) CreateAddress(_ context.Context, _ *sql.Tx, a *models.Address) error {
	f.addresses = append(f.addresses, *a)
	return nil
}

func (f *fakeOrders) CreateOrder(_ context.Context, _ *sql.Tx, o *models.Order) error {
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeOrders) CreatePayment(_ context.Context, _ *sql.Tx, p *models.Payment) error {
	if f.paymentErr != nil {
		return f.paymentErr
	}
	f.payments = append(f.payments, *p)
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) List(context.Context, int, int) ([]models.Order, error) {
	return f.ListByUser(context.Background(), customerID)
}

func (f *fakeOrders) Count(context.Context) (int, error) { return len(f.orders), nil }

func (f *fakeOrders) UpdateStatus(_ context.Context, id string, status models.OrderStatus) (bool, error) {
	o, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	o.Status = status
	f.orders[id] = o
	return true, nil
}

type fakeUsage struct{ incremented []string }

func (f *fakeUsage) IncrementUsage(_ context.Context, _ *sql.Tx, id string) error {
	f.incremented = append(f.incremented, id)
	return nil
}

type orderFixture struct {
	svc    *OrderService
	carts  *fakeCheckoutCarts
	orders *fakeOrders
	usage  *fakeUsage
	mock   sqlmockExpect
}

func newOrderFixture(t *testing.T, items []models.CartItem, campaigns ...models.Campaign) orderFixture {
	conn, mock := newSQLMock(t)
	f := orderFixture{
		carts:  &fakeCheckoutCarts{cartID: "cart-1", items: items},
		orders: newFakeOrders(),
		usage:  &fakeUsage{},
		mock:   sqlmockExpect{mock},
	}
	f.svc = NewOrderService(conn, f.carts, f.orders, f.usage, staticCampaigns(campaigns), testAuthorizer(), zap.NewNop())
	return f
}

func checkoutInput() models.CheckoutInput {
	return models.CheckoutInput{
		Address: models.Address{
			Line1: "1 Main St", City: "Springfield", State: "IL", PostalCode: "62701", Country: "US",
		},
		Payment: models.PaymentCard,
	}
}

func cartItems() []models.CartItem {
	return []models.CartItem{
		{ID: "i1", ProductID: sneakID, Quantity: 2, Product: models.Product{ID: sneakID, Name: "Sneaker", Price: dec("100.00"), CategoryID: shoesID}},
		{ID: "i2", ProductID: capID, Quantity: 1, Product: models.Product{ID: capID, Name: "Cap", Price: dec("20.00"), CategoryID: hatsID}},
	}
}

func TestCheckoutChargesEffectivePrices(t *testing.T) {
	sale := window(models.Campaign{
		ID: "sale", Name: "Shoes", Type: models.FixedAmountDiscount,
		DiscountValue: nullDec("15"), CategoryIDs: []string{shoesID},
	})
	f := newOrderFixture(t, cartItems(), sale)
	f.mock.tx(true)

	order, err := f.svc.Checkout(context.Background(), customerID, checkoutInput())
	require.NoError(t, err)

	assert.True(t, dec("190").Equal(order.Total))
	assert.Equal(t, models.OrderPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.True(t, dec("85").Equal(order.Items[0].Price))
	assert.Equal(t, "sale", order.Items[0].CampaignID)
	assert.True(t, dec("20").Equal(order.Items[1].Price))
	assert.Empty(t, order.Items[1].CampaignID)

	require.Len(t, f.orders.payments, 1)
	assert.True(t, order.Total.Equal(f.orders.payments[0].Amount))
	assert.Equal(t, models.PaymentPending, f.orders.payments[0].Status)
	assert.Equal(t, models.PaymentCard, f.orders.payments[0].Method)

	require.Len(t, f.orders.addresses, 1)
	assert.Equal(t, customerID, f.orders.addresses[0].UserID)
	assert.Equal(t, []string{"sale"}, f.usage.incremented)
	assert.True(t, f.carts.cleared)
}

func TestCheckoutEmptyCartWritesNothing(t *testing.T) {
	f := newOrderFixture(t, nil)
	f.mock.tx(false)

	_, err := f.svc.Checkout(context.Background(), customerID, checkoutInput())
	assert.ErrorIs(t, err, models.ErrEmptyCart)
	assert.Empty(t, f.orders.addresses)
	assert.Empty(t, f.orders.orders)
	assert.False(t, f.carts.cleared)
}

func TestCheckoutWithoutCart(t *testing.T) {
	f := newOrderFixture(t, nil)
	f.carts.cartID = ""
	f.mock.tx(false)

	_, err := f.svc.Checkout(context.Background(), customerID, checkoutInput())
	assert.ErrorIs(t, err, models.ErrEmptyCart)
}

func TestCheckoutRollsBackOnPaymentFailure(t *testing.T) {
	f := newOrderFixture(t, cartItems())
	f.orders.paymentErr = errors.New("payments table locked")
	f.mock.tx(false)

	_, err := f.svc.Checkout(context.Background(), customerID, checkoutInput())
	require.Error(t, err)
	assert.Empty(t, f.usage.incremented)
	assert.False(t, f.carts.cleared)
}

func TestCheckoutValidatesBeforeTransaction(t *testing.T) {
	f := newOrderFixture(t, cartItems())
	ctx := context.Background()

	in := checkoutInput()
	in.Address.City = ""
	_, err := f.svc.Checkout(ctx, customerID, in)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "address.city", verr.Field)

	in = checkoutInput()
	in.Payment = "bitcoin"
	_, err = f.svc.Checkout(ctx, customerID, in)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGetOrderOwnerOrAdmin(t *testing.T) {
	f := newOrderFixture(t, nil)
	f.orders.orders["o1"] = models.Order{ID: "o1", UserID: customerID}
	ctx := context.Background()

	_, err := f.svc.Get(ctx, customerID, "o1")
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, adminID, "o1")
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, otherID, "o1")
	assert.ErrorIs(t, err, models.ErrForbidden)
	_, err = f.svc.Get(ctx, customerID, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(t, nil)
	f.orders.orders["o1"] = models.Order{ID: "o1", UserID: customerID, Status: models.OrderPending}
	ctx := context.Background()

	o, err := f.svc.UpdateStatus(ctx, adminID, "o1", models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, o.Status)

	_, err = f.svc.UpdateStatus(ctx, adminID, "o1", "LOST")
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = f.svc.UpdateStatus(ctx, customerID, "o1", models.OrderCancelled)
	assert.ErrorIs(t, err, models.ErrForbidden)
	_, err = f.svc.UpdateStatus(ctx, adminID, "missing", models.OrderCancelled)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListOrders(t *testing.T) {
	f := newOrderFixture(t, nil)
	f.orders.orders["o1"] = models.Order{ID: "o1", UserID: customerID}
	ctx := context.Background()

	mine, err := f.svc.ListMine(ctx, otherID)
	require.NoError(t, err)
	assert.Empty(t, mine)
	assert.NotNil(t, mine)

	page, err := f.svc.List(ctx, adminID, models.PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}
