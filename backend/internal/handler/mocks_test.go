package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/playto-dev/playto/shared/domain"
	mw "github.com/playto-dev/playto/shared/middleware"
)

type MockAuthService struct {
	MockLogin    func(creds domain.Credentials) (string, error)
	MockRegister func(creds domain.Credentials) (domain.UserId, error)
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(creds)
	}
	return "", nil
}

func (m *MockAuthService) Register(ctx context.Context, creds domain.Credentials) (domain.UserId, error) {
	if m.MockRegister != nil {
		return m.MockRegister(creds)
	}
	return 0, nil
}

type MockPostService struct {
	MockCreate func(data domain.PostCreationData) (domain.PostMetadata, error)
	MockList   func(viewer *domain.User) ([]domain.PostMetadata, error)
	MockGet    func(id domain.PostId, viewer *domain.User) (domain.Post, error)
}

func (m *MockPostService) Create(ctx context.Context, data domain.PostCreationData) (domain.PostMetadata, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return domain.PostMetadata{}, nil
}

func (m *MockPostService) List(ctx context.Context, viewer *domain.User) ([]domain.PostMetadata, error) {
	if m.MockList != nil {
		return m.MockList(viewer)
	}
	return []domain.PostMetadata{}, nil
}

func (m *MockPostService) Get(ctx context.Context, id domain.PostId, viewer *domain.User) (domain.Post, error) {
	if m.MockGet != nil {
		return m.MockGet(id, viewer)
	}
	return domain.Post{}, nil
}

type MockCommentService struct {
	MockCreate func(data domain.CommentCreationData) (domain.Comment, error)
}

func (m *MockCommentService) Create(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return domain.Comment{}, nil
}

type MockVoteService struct {
	MockToggle func(actor *domain.User, kind domain.SubjectKind, id domain.SubjectId) (domain.VoteStatus, error)
}

func (m *MockVoteService) Toggle(ctx context.Context, actor *domain.User, kind domain.SubjectKind, id domain.SubjectId) (domain.VoteStatus, error) {
	if m.MockToggle != nil {
		return m.MockToggle(actor, kind, id)
	}
	return domain.VoteLiked, nil
}

type MockLeaderboardService struct {
	MockTop func() ([]domain.LeaderboardEntry, error)
}

func (m *MockLeaderboardService) Top(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if m.MockTop != nil {
		return m.MockTop()
	}
	return []domain.LeaderboardEntry{}, nil
}

func (m *MockLeaderboardService) ComputeTop(ctx context.Context, n int, window time.Duration) ([]domain.LeaderboardEntry, error) {
	return m.Top(ctx)
}

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// asUser attaches an authenticated user the way NeedAuth would.
func asUser(req *http.Request, user *domain.User) *http.Request {
	return req.WithContext(mw.WithUser(req.Context(), user))
}
