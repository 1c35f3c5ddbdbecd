package service

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type CartStore interface {
	EnsureCart(ctx context.Context, userID string) (*models.Cart, error)
	Items(ctx context.Context, cartID string) ([]models.CartItem, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (bool, error)
	RemoveItem(ctx context.Context, userID, itemID string) (bool, error)
	ItemCount(ctx context.Context, userID string) (int, error)
}

type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

type CartService struct {
	carts     CartStore
	products  ProductLookup
	campaigns ActiveCampaigns
	log       *zap.Logger
}

func NewCartService(carts CartStore, products ProductLookup, campaigns ActiveCampaigns, log *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, campaigns: campaigns, log: log}
}

// GetCart returns the user's cart, created on first access, with every line
// priced against the active campaigns.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.CartView, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	cart, err := s.carts.EnsureCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.carts.Items(ctx, cart.ID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart items")
	}
	active, err := s.campaigns.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	lines, subtotal := priceCart(items, active)
	return &models.CartView{
		ID:       cart.ID,
		UserID:   cart.UserID,
		Lines:    lines,
		Subtotal: subtotal,
	}, nil
}

// AddToCart adds quantity of a product, merging with an existing line.
func (s *CartService) AddToCart(ctx context.Context, userID string, in models.AddToCartInput) (*models.CartView, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	p, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}
	if p == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "product %s", in.ProductID)
	}

	cart, err := s.carts.EnsureCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.AddItem(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		return nil, errors.Wrap(err, "add cart item")
	}
	s.log.Debug("cart item added",
		zap.String("user_id", userID),
		zap.String("product_id", in.ProductID),
		zap.Int("quantity", in.Quantity),
	)
	return s.GetCart(ctx, userID)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, in models.UpdateQuantityInput) (*models.CartView, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	ok, err := s.carts.UpdateItemQuantity(ctx, userID, itemID, in.Quantity)
	if err != nil {
		return nil, errors.Wrap(err, "update cart item")
	}
	if !ok {
		return nil, errors.Wrapf(models.ErrNotFound, "cart item %s", itemID)
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID string) (*models.CartView, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	ok, err := s.carts.RemoveItem(ctx, userID, itemID)
	if err != nil {
		return nil, errors.Wrap(err, "remove cart item")
	}
	if !ok {
		return nil, errors.Wrapf(models.ErrNotFound, "cart item %s", itemID)
	}
	return s.GetCart(ctx, userID)
}

// ItemCount is the total quantity across the user's cart.
func (s *CartService) ItemCount(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, models.ErrUnauthenticated
	}
	n, err := s.carts.ItemCount(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "count cart items")
	}
	return n, nil
}
