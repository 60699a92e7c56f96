package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/playto-dev/playto/backend/internal/handler"
	"github.com/playto-dev/playto/backend/internal/setup"
	"github.com/playto-dev/playto/shared/config"
	"github.com/playto-dev/playto/shared/domain"
	internal_errors "github.com/playto-dev/playto/shared/errors"
	mw "github.com/playto-dev/playto/shared/middleware"
	rl "github.com/playto-dev/playto/shared/middleware/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubServices answers every service interface with fixed data.
type stubServices struct{}

func (stubServices) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if creds.Password != "password" {
		return "", internal_errors.Unauthorized("Invalid credentials")
	}
	return "good", nil
}

func (stubServices) Register(ctx context.Context, creds domain.Credentials) (domain.UserId, error) {
	return 1, nil
}

func (stubServices) Create(ctx context.Context, data domain.PostCreationData) (domain.PostMetadata, error) {
	return domain.PostMetadata{Id: 1, Author: data.Author.Author(), Content: data.Content}, nil
}

func (stubServices) List(ctx context.Context, viewer *domain.User) ([]domain.PostMetadata, error) {
	return []domain.PostMetadata{{Id: 1, UserHasLiked: viewer != nil}}, nil
}

func (stubServices) Get(ctx context.Context, id domain.PostId, viewer *domain.User) (domain.Post, error) {
	return domain.Post{PostMetadata: domain.PostMetadata{Id: id}, Comments: []*domain.Comment{}}, nil
}

type stubComments struct{}

func (stubComments) Create(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	return domain.Comment{Id: 1, PostId: data.PostId}, nil
}

type stubVotes struct{}

func (stubVotes) Toggle(ctx context.Context, actor *domain.User, kind domain.SubjectKind, id domain.SubjectId) (domain.VoteStatus, error) {
	return domain.VoteLiked, nil
}

type stubLeaderboard struct{}

func (stubLeaderboard) Top(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return []domain.LeaderboardEntry{}, nil
}

func (stubLeaderboard) ComputeTop(ctx context.Context, n int, window time.Duration) ([]domain.LeaderboardEntry, error) {
	return []domain.LeaderboardEntry{}, nil
}

type stubPinger struct{}

func (stubPinger) Ping(ctx context.Context) error { return nil }

type stubTokens struct{}

func (stubTokens) UserFromToken(token string) (*domain.User, error) {
	if token != "good" {
		return nil, internal_errors.Unauthorized("invalid token")
	}
	return &domain.User{Id: 1, Username: "alice"}, nil
}

func newTestRouter(limiters setup.RateLimiters) http.Handler {
	cfg := &config.Config{Public: config.Public{
		JwtTTL:         time.Hour,
		AllowedOrigins: []string{"http://localhost:5173"},
	}}
	h := handler.New(stubServices{}, stubServices{}, stubComments{}, stubVotes{}, stubLeaderboard{}, stubPinger{}, cfg)
	return New(&setup.Dependencies{
		Config:         cfg,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(stubTokens{}),
		Limiters:       limiters,
	})
}

func generousLimiters() setup.RateLimiters {
	return setup.RateLimiters{Login: rl.Rps100(), Content: rl.Rps100(), Votes: rl.Rps100()}
}

func serve(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRoutes(t *testing.T) {
	router := newTestRouter(generousLimiters())

	tests := []struct {
		method, path, body, token string
		status                    int
	}{
		{"GET", "/posts/", "", "", http.StatusOK},
		{"GET", "/posts", "", "", http.StatusOK},
		{"GET", "/posts/3/", "", "", http.StatusOK},
		{"GET", "/posts/3", "", "", http.StatusOK},
		{"GET", "/posts/abc/", "", "", http.StatusNotFound},
		{"POST", "/posts/", `{"content":"hi"}`, "good", http.StatusCreated},
		{"POST", "/posts", `{"content":"hi"}`, "", http.StatusUnauthorized},
		{"POST", "/comments/", `{"post":1,"content":"hi"}`, "good", http.StatusCreated},
		{"POST", "/comments", `{"post":1,"content":"hi"}`, "bad", http.StatusUnauthorized},
		{"POST", "/vote/post/1/", "", "good", http.StatusCreated},
		{"POST", "/vote/comment/1", "", "good", http.StatusCreated},
		{"POST", "/vote/post/1/", "", "", http.StatusUnauthorized},
		{"GET", "/leaderboard/", "", "", http.StatusOK},
		{"GET", "/leaderboard", "", "", http.StatusOK},
		{"POST", "/auth/login", `{"username":"alice","password":"password"}`, "", http.StatusOK},
		{"GET", "/health", "", "", http.StatusOK},
		{"GET", "/ready", "", "", http.StatusOK},
		{"GET", "/metrics", "", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := serve(router, tt.method, tt.path, tt.body, tt.token)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}
}

func TestOptionalAuthOnReads(t *testing.T) {
	router := newTestRouter(generousLimiters())

	rr := serve(router, "GET", "/posts/", "", "good")
	assert.Contains(t, rr.Body.String(), `"user_has_liked":true`)

	rr = serve(router, "GET", "/posts/", "", "bad")
	assert.Equal(t, http.StatusOK, rr.Code, "an invalid token on a read is ignored")
	assert.Contains(t, rr.Body.String(), `"user_has_liked":false`)
}

func TestCommonHeaders(t *testing.T) {
	router := newTestRouter(generousLimiters())

	rr := serve(router, "GET", "/health", "", "")

	assert.NotEmpty(t, rr.Header().Get(mw.RequestIdHeader))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(generousLimiters())

	req := httptest.NewRequest(http.MethodOptions, "/posts/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Less(t, rr.Code, 300)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginIsRateLimitedByIP(t *testing.T) {
	limiters := generousLimiters()
	limiters.Login = rl.OnceInSecond()
	router := newTestRouter(limiters)
	body := `{"username":"alice","password":"password"}`

	assert.Equal(t, http.StatusOK, serve(router, "POST", "/auth/login", body, "").Code)
	rr := serve(router, "POST", "/auth/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestCookieSessionNeedsCSRFHeader(t *testing.T) {
	router := newTestRouter(generousLimiters())
	post := func(csrfHeader string) int {
		req := httptest.NewRequest(http.MethodPost, "/posts/", strings.NewReader(`{"content":"hi"}`))
		req.AddCookie(&http.Cookie{Name: mw.AccessTokenCookie, Value: "good"})
		req.AddCookie(&http.Cookie{Name: mw.CSRFCookie, Value: "c1"})
		if csrfHeader != "" {
			req.Header.Set(mw.CSRFHeader, csrfHeader)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusForbidden, post(""))
	assert.Equal(t, http.StatusCreated, post("c1"))
}
