package service

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/concurrency"
	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/pkg/db"
)

// CheckoutCarts is the part of the cart store checkout needs inside its
// transaction.
type CheckoutCarts interface {
	LockByUser(ctx context.Context, tx *sql.Tx, userID string) (string, error)
	ItemsTx(ctx context.Context, tx *sql.Tx, cartID string) ([]models.CartItem, error)
	ClearTx(ctx context.Context, tx *sql.Tx, cartID string) error
}

type OrderStore interface {
	CreateAddress(ctx context.Context, tx *sql.Tx, a *models.Address) error
	CreateOrder(ctx context.Context, tx *sql.Tx, o *models.Order) error
	CreatePayment(ctx context.Context, tx *sql.Tx, p *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	List(ctx context.Context, offset, limit int) ([]models.Order, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (bool, error)
}

type UsageCounter interface {
	IncrementUsage(ctx context.Context, tx *sql.Tx, campaignID string) error
}

type OrderService struct {
	db        *sql.DB // used for transactions
	carts     CheckoutCarts
	orders    OrderStore
	usage     UsageCounter
	campaigns ActiveCampaigns
	authz     *Authorizer
	log       *zap.Logger
}

func NewOrderService(conn *sql.DB, carts CheckoutCarts, orders OrderStore, usage UsageCounter, campaigns ActiveCampaigns, authz *Authorizer, log *zap.Logger) *OrderService {
	return &OrderService{
		db:        conn,
		carts:     carts,
		orders:    orders,
		usage:     usage,
		campaigns: campaigns,
		authz:     authz,
		log:       log,
	}
}

// Checkout turns the user's cart into an order. Address, order, items,
// payment, campaign usage and cart clearing commit together or not at all.
// Each line is charged its campaign-adjusted unit price.
func (s *OrderService) Checkout(ctx context.Context, userID string, in models.CheckoutInput) (*models.Order, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	active, err := s.campaigns.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = db.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		cartID, err := s.carts.LockByUser(ctx, tx, userID)
		if err != nil {
			return errors.Wrap(err, "lock cart")
		}
		if cartID == "" {
			return models.ErrEmptyCart
		}
		items, err := s.carts.ItemsTx(ctx, tx, cartID)
		if err != nil {
			return errors.Wrap(err, "load cart items")
		}
		if len(items) == 0 {
			return models.ErrEmptyCart
		}

		address := in.Address
		address.ID = uuid.NewString()
		address.UserID = userID
		if err := s.orders.CreateAddress(ctx, tx, &address); err != nil {
			return err
		}

		lines, total := priceCart(items, active)
		o := &models.Order{
			ID:        uuid.NewString(),
			UserID:    userID,
			AddressID: address.ID,
			Status:    models.OrderPending,
			Total:     total,
			Items:     make([]models.OrderItem, 0, len(lines)),
			Address:   &address,
		}
		used := make(map[string]bool)
		var usedCampaigns []string
		for _, line := range lines {
			o.Items = append(o.Items, models.OrderItem{
				ID:          uuid.NewString(),
				OrderID:     o.ID,
				ProductID:   line.ProductID,
				ProductName: line.Product.Name,
				Quantity:    line.Quantity,
				Price:       line.UnitPrice,
				CampaignID:  line.CampaignID,
			})
			if line.CampaignID != "" && !used[line.CampaignID] {
				used[line.CampaignID] = true
				usedCampaigns = append(usedCampaigns, line.CampaignID)
			}
		}
		if err := s.orders.CreateOrder(ctx, tx, o); err != nil {
			return err
		}

		payment := &models.Payment{
			ID:      uuid.NewString(),
			OrderID: o.ID,
			Amount:  total,
			Status:  models.PaymentPending,
			Method:  in.Payment,
		}
		if err := s.orders.CreatePayment(ctx, tx, payment); err != nil {
			return err
		}
		o.Payment = payment

		for _, id := range usedCampaigns {
			if err := s.usage.IncrementUsage(ctx, tx, id); err != nil {
				return errors.Wrapf(err, "increment usage %s", id)
			}
		}

		if err := s.carts.ClearTx(ctx, tx, cartID); err != nil {
			return errors.Wrap(err, "clear cart")
		}
		order = o
		return nil
	})
	if err != nil {
		if !errors.Is(err, models.ErrEmptyCart) {
			s.log.Error("checkout failed", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	s.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Int("items", len(order.Items)),
	)
	return order, nil
}

// Get returns an order to its owner or to an admin.
func (s *OrderService) Get(ctx context.Context, actorID, id string) (*models.Order, error) {
	if actorID == "" {
		return nil, models.ErrUnauthenticated
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get order")
	}
	if o == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "order %s", id)
	}
	if o.UserID == actorID {
		return o, nil
	}
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *OrderService) List(ctx context.Context, actorID string, req models.PageRequest) (models.Page[models.Order], error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return models.Page[models.Order]{}, err
	}
	if err := validateStruct(req); err != nil {
		return models.Page[models.Order]{}, err
	}

	var (
		items []models.Order
		total int
	)
	err := concurrency.Run(ctx, 2,
		func(ctx context.Context) error {
			var err error
			if items, err = s.orders.List(ctx, req.Offset(), req.PageSize); err != nil {
				return errors.Wrap(err, "list orders")
			}
			return nil
		},
		func(ctx context.Context) error {
			var err error
			if total, err = s.orders.Count(ctx); err != nil {
				return errors.Wrap(err, "count orders")
			}
			return nil
		},
	)
	if err != nil {
		return models.Page[models.Order]{}, err
	}
	return models.NewPage(items, total, req.Page, req.PageSize), nil
}

// UpdateStatus is the only mutation allowed on a placed order.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, id string, status models.OrderStatus) (*models.Order, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, models.NewValidationError("status", "unknown order status %q", status)
	}
	ok, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, errors.Wrap(err, "update order status")
	}
	if !ok {
		return nil, errors.Wrapf(models.ErrNotFound, "order %s", id)
	}
	s.log.Info("order status changed",
		zap.String("order_id", id),
		zap.String("status", string(status)),
		zap.String("actor_id", actorID),
	)
	return s.orders.GetByID(ctx, id)
}
