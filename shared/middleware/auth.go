package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/logger"
	"github.com/playto-dev/playto/shared/utils"
)

// TokenDecoder turns a bearer credential into the user it was issued to.
type TokenDecoder interface {
	UserFromToken(token string) (*domain.User, error)
}

type key int

const UserClaimsKey key = 0

const AccessTokenCookie = "accessToken"

var errNoToken = errors.New("no token")

// Auth holds dependencies for authentication middleware
type Auth struct {
	tokens TokenDecoder
}

func NewAuth(tokens TokenDecoder) *Auth {
	return &Auth{tokens: tokens}
}

// NeedAuth rejects requests without a valid credential with 401.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUserFromContext(r) != nil {
				next.ServeHTTP(w, r)
				return
			}
			user, err := a.extractUser(r)
			if err != nil {
				if errors.Is(err, errNoToken) {
					utils.WriteError(w, http.StatusUnauthorized, "Please sign in")
					return
				}
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// OptionalAuth populates the user if the credential is valid and otherwise
// serves the request anonymously.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				if !errors.Is(err, errNoToken) {
					logger.Log.Debug("ignoring invalid credential", "component", "auth", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// extractUser reads the bearer header first, then the cookie. CSRF exempts
// bearer requests, so a present bearer header is the only credential used.
func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	var tokenString string
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = strings.TrimSpace(token)
	} else if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		tokenString = cookie.Value
	}
	if tokenString == "" {
		return nil, errNoToken
	}
	return a.tokens.UserFromToken(tokenString)
}

func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserClaimsKey, user)
}

// GetUserFromContext returns the authenticated user or nil.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
