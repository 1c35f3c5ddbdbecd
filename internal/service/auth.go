package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/repository"
)

type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

type AuthService struct {
	users  AccountStore
	tokens TokenIssuer
	log    *zap.Logger
	cost   int
}

func NewAuthService(users AccountStore, tokens TokenIssuer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log, cost: bcrypt.DefaultCost}
}

func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	if existing != nil {
		return nil, errors.Wrap(models.ErrConflict, "email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	u := &models.User{
		ID:             uuid.NewString(),
		Email:          in.Email,
		Name:           in.Name,
		HashedPassword: string(hash),
		Role:           models.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, errors.Wrap(models.ErrConflict, "email already in use")
		}
		return nil, errors.Wrap(err, "create user")
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

// Login checks credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (*models.Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	if u == nil {
		return nil, errors.Wrap(models.ErrUnauthenticated, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(in.Password)); err != nil {
		return nil, errors.Wrap(models.ErrUnauthenticated, "invalid credentials")
	}

	token, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &models.Session{Token: token, ExpiresAt: exp, User: *u}, nil
}
