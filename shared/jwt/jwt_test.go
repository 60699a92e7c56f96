package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/playto-dev/playto/shared/domain"
	internal_errors "github.com/playto-dev/playto/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	j := New("secret", time.Hour)

	token, err := j.NewToken(domain.User{Id: 42, Username: "alice"})
	require.NoError(t, err)

	user, err := j.UserFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.UserId(42), user.Id)
	assert.Equal(t, "alice", user.Username)
}

func TestRejectsForeignKey(t *testing.T) {
	token, err := New("one", time.Hour).NewToken(domain.User{Id: 1, Username: "bob"})
	require.NoError(t, err)

	_, err = New("two", time.Hour).UserFromToken(token)
	require.Error(t, err)
	assert.True(t, internal_errors.IsUnauthorized(err))
}

func TestRejectsExpired(t *testing.T) {
	j := New("secret", time.Minute)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return issued }
	token, err := j.NewToken(domain.User{Id: 1, Username: "bob"})
	require.NoError(t, err)

	j.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = j.UserFromToken(token)
	assert.True(t, internal_errors.IsUnauthorized(err))
}

func TestRejectsMissingClaims(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": 1,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = New("secret", time.Hour).UserFromToken(token)
	assert.True(t, internal_errors.IsUnauthorized(err))
}

func TestRejectsGarbage(t *testing.T) {
	_, err := New("secret", time.Hour).UserFromToken("not-a-token")
	assert.True(t, internal_errors.IsUnauthorized(err))
}
