package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/errors"
)

type voteKey struct {
	user    domain.UserId
	kind    domain.SubjectKind
	subject domain.SubjectId
}

// memStore is an in-memory implementation of every storage interface the
// services use. It follows the database semantics closely enough for
// behavioural tests.
type memStore struct {
	mu       sync.Mutex
	now      func() time.Time
	users    map[domain.UserId]domain.User
	posts    []domain.PostMetadata
	comments []domain.Comment
	votes    map[voteKey]time.Time
	nextId   int64

	createCommentCalls int
}

func newMemStore(now func() time.Time) *memStore {
	return &memStore{
		now:   now,
		users: make(map[domain.UserId]domain.User),
		votes: make(map[voteKey]time.Time),
	}
}

func (m *memStore) id() int64 {
	m.nextId++
	return m.nextId
}

func (m *memStore) SaveUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return 0, errors.Conflict("user already exists")
		}
	}
	user.Id = m.id()
	m.users[user.Id] = user
	return user.Id, nil
}

func (m *memStore) UserByUsername(ctx context.Context, username domain.Username) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, errors.NotFound("user not found")
}

func (m *memStore) CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := domain.PostMetadata{
		Id:          m.id(),
		Author:      data.Author.Author(),
		Content:     data.Content,
		ContentHTML: data.ContentHTML,
		CreatedAt:   m.now(),
	}
	m.posts = append(m.posts, p)
	return p, nil
}

func (m *memStore) ListPosts(ctx context.Context) ([]domain.PostMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	posts := slices.Clone(m.posts)
	slices.SortFunc(posts, func(a, b domain.PostMetadata) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.Id, a.Id)
	})
	return posts, nil
}

func (m *memStore) GetPost(ctx context.Context, id domain.PostId) (domain.PostMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.Id == id {
			return p, nil
		}
	}
	return domain.PostMetadata{}, errors.NotFound("post %d not found", id)
}

func (m *memStore) GetComments(ctx context.Context, postId domain.PostId) ([]domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Comment
	for _, c := range m.comments {
		if c.PostId == postId {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCommentCalls++

	found := false
	for _, p := range m.posts {
		found = found || p.Id == data.PostId
	}
	if !found {
		return domain.Comment{}, errors.NotFound("post %d not found", data.PostId)
	}
	if data.ParentId != nil {
		idx := slices.IndexFunc(m.comments, func(c domain.Comment) bool { return c.Id == *data.ParentId })
		if idx < 0 {
			return domain.Comment{}, errors.NotFound("parent comment %d not found", *data.ParentId)
		}
		if m.comments[idx].PostId != data.PostId {
			return domain.Comment{}, errors.Validation("parent comment %d belongs to another post", *data.ParentId)
		}
	}
	c := domain.Comment{
		Id:          m.id(),
		PostId:      data.PostId,
		ParentId:    data.ParentId,
		Author:      data.Author.Author(),
		Content:     data.Content,
		ContentHTML: data.ContentHTML,
		CreatedAt:   m.now(),
		Replies:     []*domain.Comment{},
	}
	m.comments = append(m.comments, c)
	return c, nil
}

func (m *memStore) likes(kind domain.SubjectKind, id domain.SubjectId) *int {
	switch kind {
	case domain.SubjectPost:
		for i := range m.posts {
			if m.posts[i].Id == id {
				return &m.posts[i].LikesCount
			}
		}
	case domain.SubjectComment:
		for i := range m.comments {
			if m.comments[i].Id == id {
				return &m.comments[i].LikesCount
			}
		}
	}
	return nil
}

func (m *memStore) ToggleVote(ctx context.Context, userId domain.UserId, kind domain.SubjectKind, subjectId domain.SubjectId) (domain.VoteStatus, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	likes := m.likes(kind, subjectId)
	if likes == nil {
		return "", 0, errors.NotFound("%s %d not found", kind, subjectId)
	}
	key := voteKey{userId, kind, subjectId}
	if _, ok := m.votes[key]; ok {
		delete(m.votes, key)
		*likes = max(*likes-1, 0)
		return domain.VoteUnliked, *likes, nil
	}
	m.votes[key] = m.now()
	*likes++
	return domain.VoteLiked, *likes, nil
}

func (m *memStore) LikedSubjects(ctx context.Context, userId domain.UserId, kind domain.SubjectKind, ids []domain.SubjectId) (map[domain.SubjectId]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	liked := make(map[domain.SubjectId]bool)
	for _, id := range ids {
		if _, ok := m.votes[voteKey{userId, kind, id}]; ok {
			liked[id] = true
		}
	}
	return liked, nil
}

func (m *memStore) VoteTallies(ctx context.Context, since, until time.Time) ([]domain.AuthorTally, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byAuthor := make(map[domain.UserId]*domain.AuthorTally)
	tally := func(a domain.Author) *domain.AuthorTally {
		t, ok := byAuthor[a.Id]
		if !ok {
			t = &domain.AuthorTally{UserId: a.Id, Username: a.Username}
			byAuthor[a.Id] = t
		}
		return t
	}
	for key, at := range m.votes {
		if at.Before(since) || at.After(until) {
			continue
		}
		switch key.kind {
		case domain.SubjectPost:
			for _, p := range m.posts {
				if p.Id == key.subject {
					tally(p.Author).PostVotes++
				}
			}
		case domain.SubjectComment:
			for _, c := range m.comments {
				if c.Id == key.subject {
					tally(c.Author).CommentVotes++
				}
			}
		}
	}
	out := make([]domain.AuthorTally, 0, len(byAuthor))
	for _, t := range byAuthor {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b domain.AuthorTally) int { return cmp.Compare(a.UserId, b.UserId) })
	return out, nil
}

// backdateVotes moves every vote by user back by d.
func (m *memStore) backdateVotes(user domain.UserId, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, at := range m.votes {
		if key.user == user {
			m.votes[key] = at.Add(-d)
		}
	}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Millisecond) // strictly increasing creation times
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// plainText is a ContentProcessor that only trims, so assertions stay simple.
type plainText struct{}

func (plainText) Normalize(s string) string { return strings.TrimSpace(s) }
func (plainText) Render(s string) string    { return "<p>" + s + "</p>" }
