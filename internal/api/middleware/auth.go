package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront-service/internal/api/respond"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

type ctxKey struct{}

type TokenParser interface {
	Parse(token string) (string, error)
}

// UserID returns the authenticated caller, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Authenticate resolves a bearer token into a user id. Requests without
// an Authorization header pass through anonymously; a bad token is a 401.
func Authenticate(tokens TokenParser, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				respond.Error(w, log, errors.Wrap(models.ErrUnauthenticated, "malformed authorization header"))
				return
			}
			userID, err := tokens.Parse(token)
			if err != nil {
				respond.Error(w, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserID(r.Context()) == "" {
				respond.Error(w, log, models.ErrUnauthenticated)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
