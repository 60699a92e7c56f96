package service

import (
	"context"
	"strings"

	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/errors"
	"github.com/playto-dev/playto/shared/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Register(ctx context.Context, creds domain.Credentials) (domain.UserId, error)
}

type AuthStorage interface {
	SaveUser(ctx context.Context, user domain.User) (domain.UserId, error)
	UserByUsername(ctx context.Context, username domain.Username) (domain.User, error)
}

type TokenIssuer interface {
	NewToken(user domain.User) (string, error)
}

type Auth struct {
	storage AuthStorage
	tokens  TokenIssuer
	cost    int
}

func NewAuth(storage AuthStorage, tokens TokenIssuer) *Auth {
	return &Auth{storage: storage, tokens: tokens, cost: bcrypt.DefaultCost}
}

const maxUsernameLen = 150

// Register creates a user with a bcrypt password hash.
func (a *Auth) Register(ctx context.Context, creds domain.Credentials) (domain.UserId, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || len(username) > maxUsernameLen {
		return 0, errors.Validation("username must be 1-%d characters", maxUsernameLen)
	}
	if creds.Password == "" {
		return 0, errors.Validation("password must not be empty")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), a.cost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return 0, err
	}
	id, err := a.storage.SaveUser(ctx, domain.User{Username: username, PassHash: string(passHash)})
	if err != nil {
		return 0, err
	}
	logger.Log.Info("user registered", "component", "auth", "user_id", id, "username", username)
	return id, nil
}

// Login verifies the password and returns an access token. Unknown users and
// wrong passwords look the same to the caller.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	user, err := a.storage.UserByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.Unauthorized("Invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Info("password verification failed", "component", "auth", "user_id", user.Id)
		return "", errors.Unauthorized("Invalid credentials")
	}

	token, err := a.tokens.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", err
	}
	return token, nil
}
