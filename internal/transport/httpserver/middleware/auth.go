package middleware

import (
	"context"
	"net/http"
	"strings"

	userdomain "hometeam-go/internal/domain/user"
	"hometeam-go/internal/transport/httpserver/handler/common"
	"hometeam-go/pkg/logger"
)

// TokenVerifier validates a bearer token and returns the subject user ID.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// UserLoader resolves the authenticated user record.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

type JWTAuth struct {
	tokens TokenVerifier
	users  UserLoader
	log    logger.Logger
}

type contextKey int

const userKey contextKey = iota

// User is the authenticated principal attached to the request context.
type User struct {
	ID       string
	Username string
	Email    string
}

func NewJWTAuth(tokens TokenVerifier, users UserLoader, log logger.Logger) *JWTAuth {
	return &JWTAuth{tokens: tokens, users: users, log: log}
}

func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		userID, err := a.tokens.Verify(token)
		if err != nil {
			unauthorized(w)
			return
		}

		loaded, err := a.users.GetByID(r.Context(), userID)
		if err != nil {
			a.log.BusinessError("auth: user lookup failed", err, "user_id", userID)
			unauthorized(w)
			return
		}

		ctx := WithUser(r.Context(), User{
			ID:       loaded.ID,
			Username: loaded.Username,
			Email:    loaded.Email,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}
