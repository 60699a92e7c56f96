package feed

import (
	"context"
	"sync"

	"github.com/playto-dev/playto/shared/api"
	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/logger"
)

// PostView is one post with its comment tree.
type PostView struct {
	api API
	id  domain.PostId

	mu     sync.Mutex
	viewer Viewer
	post   *domain.Post
	gens   generations
}

func NewPostView(api API, id domain.PostId) *PostView {
	return &PostView{api: api, id: id}
}

func (p *PostView) SetViewer(ctx context.Context, v Viewer) error {
	p.mu.Lock()
	if p.viewer != v {
		p.viewer = v
		p.post = nil
	}
	p.mu.Unlock()
	return p.Refresh(ctx)
}

func (p *PostView) Viewer() Viewer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewer
}

func (p *PostView) Refresh(ctx context.Context) error {
	p.mu.Lock()
	ctx, gen := p.gens.begin(ctx)
	viewer := p.viewer
	p.mu.Unlock()

	post, err := p.api.GetPost(ctx, viewer.Token, p.id)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.gens.finish(gen) || p.viewer != viewer {
		logger.Log.Debug("discarding stale post", "component", "feed", "post_id", p.id, "generation", gen)
		return ErrStaleResponse
	}
	if err != nil {
		return err
	}
	p.post = &post
	return nil
}

// Post returns a deep copy of the snapshot. ok is false before the first
// successful refresh.
func (p *PostView) Post() (post domain.Post, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.post == nil {
		return domain.Post{}, false
	}
	post = *p.post
	post.Comments = cloneComments(p.post.Comments)
	return post, true
}

// SubmitComment posts a comment (a reply when parent is set) and refetches
// the tree.
func (p *PostView) SubmitComment(ctx context.Context, parent *domain.CommentId, content domain.Content) (domain.Comment, error) {
	viewer := p.Viewer()
	comment, err := p.api.CreateComment(ctx, viewer.Token, api.CreateCommentRequest{
		Post:    p.id,
		Parent:  parent,
		Content: content,
	})
	if err != nil {
		return domain.Comment{}, err
	}
	return comment, ignoreStale(p.Refresh(ctx))
}

// ToggleLike flips the viewer's like on the post or any comment in its tree.
func (p *PostView) ToggleLike(ctx context.Context, kind domain.SubjectKind, id domain.SubjectId) (domain.VoteStatus, error) {
	viewer := p.Viewer()
	status, err := p.api.ToggleVote(ctx, viewer.Token, kind, id)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.viewer != viewer || p.post == nil {
		return status, nil
	}
	switch kind {
	case domain.SubjectPost:
		if p.post.Id == id {
			applyStatus(&p.post.LikesCount, &p.post.UserHasLiked, status)
		}
	case domain.SubjectComment:
		domain.Walk(p.post.Comments, func(c *domain.Comment) bool {
			if c.Id != id {
				return true
			}
			applyStatus(&c.LikesCount, &c.UserHasLiked, status)
			return false
		})
	}
	return status, nil
}

func cloneComments(comments []*domain.Comment) []*domain.Comment {
	if comments == nil {
		return nil
	}
	out := make([]*domain.Comment, len(comments))
	for i, c := range comments {
		cp := *c
		cp.Replies = cloneComments(c.Replies)
		out[i] = &cp
	}
	return out
}
