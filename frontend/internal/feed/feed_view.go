package feed

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/logger"
)

// FeedView is the list of posts as the current viewer sees it.
type FeedView struct {
	api API

	mu     sync.Mutex
	viewer Viewer
	posts  []domain.PostMetadata
	gens   generations
}

func NewFeedView(api API) *FeedView {
	return &FeedView{api: api}
}

// SetViewer switches the viewer and refetches, since like flags are
// viewer-relative.
func (f *FeedView) SetViewer(ctx context.Context, v Viewer) error {
	f.mu.Lock()
	if f.viewer != v {
		f.viewer = v
		f.posts = nil
	}
	f.mu.Unlock()
	return f.Refresh(ctx)
}

func (f *FeedView) Viewer() Viewer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewer
}

// Refresh replaces the snapshot with the server's list. A refresh that was
// superseded returns ErrStaleResponse and leaves the snapshot alone.
func (f *FeedView) Refresh(ctx context.Context) error {
	f.mu.Lock()
	ctx, gen := f.gens.begin(ctx)
	viewer := f.viewer
	f.mu.Unlock()

	posts, err := f.api.ListPosts(ctx, viewer.Token)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.gens.finish(gen) || f.viewer != viewer {
		logger.Log.Debug("discarding stale feed", "component", "feed", "generation", gen)
		return ErrStaleResponse
	}
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []domain.PostMetadata{}
	}
	f.posts = posts
	return nil
}

// Posts returns a copy of the current snapshot, nil before the first refresh.
func (f *FeedView) Posts() []domain.PostMetadata {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.posts)
}

// SubmitPost creates a post and refetches the list.
func (f *FeedView) SubmitPost(ctx context.Context, content domain.Content) (domain.PostMetadata, error) {
	viewer := f.Viewer()
	post, err := f.api.CreatePost(ctx, viewer.Token, content)
	if err != nil {
		return domain.PostMetadata{}, err
	}
	return post, ignoreStale(f.Refresh(ctx))
}

// ToggleLike flips the viewer's like and applies the answer to the snapshot.
func (f *FeedView) ToggleLike(ctx context.Context, kind domain.SubjectKind, id domain.SubjectId) (domain.VoteStatus, error) {
	viewer := f.Viewer()
	status, err := f.api.ToggleVote(ctx, viewer.Token, kind, id)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.viewer != viewer || kind != domain.SubjectPost {
		return status, nil
	}
	for i := range f.posts {
		if f.posts[i].Id == id {
			applyStatus(&f.posts[i].LikesCount, &f.posts[i].UserHasLiked, status)
			break
		}
	}
	return status, nil
}

// ignoreStale treats a superseded refresh after a write as success: a newer
// refresh is already bringing the snapshot up to date.
func ignoreStale(err error) error {
	if errors.Is(err, ErrStaleResponse) {
		return nil
	}
	return err
}
