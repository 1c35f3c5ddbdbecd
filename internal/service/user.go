package service

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/concurrency"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	List(ctx context.Context, offset, limit int) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	UpdateRole(ctx context.Context, id, role string) (bool, error)
}

// UserHistory loads what the admin user page shows next to a user.
type UserHistory interface {
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	AddressesByUser(ctx context.Context, userID string) ([]models.Address, error)
}

type UserService struct {
	users   UserStore
	history UserHistory
	authz   *Authorizer
	log     *zap.Logger
}

func NewUserService(users UserStore, history UserHistory, authz *Authorizer, log *zap.Logger) *UserService {
	return &UserService{users: users, history: history, authz: authz, log: log}
}

func (s *UserService) List(ctx context.Context, actorID string, req models.PageRequest) (models.Page[models.User], error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return models.Page[models.User]{}, err
	}
	if err := validateStruct(req); err != nil {
		return models.Page[models.User]{}, err
	}

	var (
		items []models.User
		total int
	)
	err := concurrency.Run(ctx, 2,
		func(ctx context.Context) error {
			var err error
			if items, err = s.users.List(ctx, req.Offset(), req.PageSize); err != nil {
				return errors.Wrap(err, "list users")
			}
			return nil
		},
		func(ctx context.Context) error {
			var err error
			if total, err = s.users.Count(ctx); err != nil {
				return errors.Wrap(err, "count users")
			}
			return nil
		},
	)
	if err != nil {
		return models.Page[models.User]{}, err
	}
	return models.NewPage(items, total, req.Page, req.PageSize), nil
}

// Get returns a user with their orders and saved addresses.
func (s *UserService) Get(ctx context.Context, actorID, id string) (*models.UserDetail, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	if u == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "user %s", id)
	}

	detail := &models.UserDetail{User: *u}
	err = concurrency.Run(ctx, 2,
		func(ctx context.Context) error {
			orders, err := s.history.ListByUser(ctx, id)
			if err != nil {
				return errors.Wrap(err, "list orders")
			}
			detail.Orders = orders
			return nil
		},
		func(ctx context.Context) error {
			addresses, err := s.history.AddressesByUser(ctx, id)
			if err != nil {
				return errors.Wrap(err, "list addresses")
			}
			detail.Addresses = addresses
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	if detail.Orders == nil {
		detail.Orders = []models.Order{}
	}
	if detail.Addresses == nil {
		detail.Addresses = []models.Address{}
	}
	return detail, nil
}

func (s *UserService) UpdateRole(ctx context.Context, actorID, id string, in models.UpdateRoleInput) (*models.User, error) {
	if err := s.authz.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	ok, err := s.users.UpdateRole(ctx, id, in.Role)
	if err != nil {
		return nil, errors.Wrap(err, "update role")
	}
	if !ok {
		return nil, errors.Wrapf(models.ErrNotFound, "user %s", id)
	}
	s.log.Info("user role changed",
		zap.String("user_id", id),
		zap.String("role", in.Role),
		zap.String("actor_id", actorID),
	)

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	if u == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "user %s", id)
	}
	return u, nil
}
