package pg

import (
	"context"

	"github.com/playto-dev/playto/shared/domain"
	sharedpg "github.com/playto-dev/playto/shared/storage/pg"
)

// SaveUser inserts a user and returns its id. A taken username is a Conflict.
func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users(username, password_hash) VALUES($1, $2) RETURNING id",
		user.Username, user.PassHash).Scan(&id)
	if err != nil {
		return 0, sharedpg.ClassifyError(err, "user")
	}
	return id, nil
}

func (s *Storage) UserByUsername(ctx context.Context, username domain.Username) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = $1", username).
		Scan(&user.Id, &user.Username, &user.PassHash, &user.CreatedAt)
	if err != nil {
		return domain.User{}, sharedpg.ClassifyError(err, "user")
	}
	return user, nil
}
