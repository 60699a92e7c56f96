package service

import (
	"context"

	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/errors"
	"github.com/playto-dev/playto/shared/logger"
)

type PostService interface {
	Create(ctx context.Context, data domain.PostCreationData) (domain.PostMetadata, error)
	List(ctx context.Context, viewer *domain.User) ([]domain.PostMetadata, error)
	Get(ctx context.Context, id domain.PostId, viewer *domain.User) (domain.Post, error)
}

type PostStorage interface {
	CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostMetadata, error)
	ListPosts(ctx context.Context) ([]domain.PostMetadata, error)
	GetPost(ctx context.Context, id domain.PostId) (domain.PostMetadata, error)
	GetComments(ctx context.Context, postId domain.PostId) ([]domain.Comment, error)
	LikedSubjects(ctx context.Context, userId domain.UserId, kind domain.SubjectKind, ids []domain.SubjectId) (map[domain.SubjectId]bool, error)
}

type Post struct {
	storage       PostStorage
	content       ContentProcessor
	maxContentLen int
}

func NewPost(storage PostStorage, content ContentProcessor, maxContentLen int) *Post {
	return &Post{storage: storage, content: content, maxContentLen: maxContentLen}
}

func (p *Post) Create(ctx context.Context, data domain.PostCreationData) (domain.PostMetadata, error) {
	if data.Author.Id == 0 {
		return domain.PostMetadata{}, errors.Unauthorized("Please sign in to post")
	}
	content, html, err := prepareContent(p.content, data.Content, p.maxContentLen)
	if err != nil {
		return domain.PostMetadata{}, err
	}
	data.Content, data.ContentHTML = content, html

	post, err := p.storage.CreatePost(ctx, data)
	if err != nil {
		return domain.PostMetadata{}, err
	}
	contentCreatedTotal.WithLabelValues("post").Inc()
	logger.Log.Info("post created", "component", "post", "post_id", post.Id, "author", data.Author.Username)
	return post, nil
}

// List returns the feed newest first with user_has_liked computed for viewer.
func (p *Post) List(ctx context.Context, viewer *domain.User) ([]domain.PostMetadata, error) {
	posts, err := p.storage.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	if viewer == nil || len(posts) == 0 {
		return posts, nil
	}

	ids := make([]domain.SubjectId, len(posts))
	for i, post := range posts {
		ids[i] = post.Id
	}
	liked, err := p.storage.LikedSubjects(ctx, viewer.Id, domain.SubjectPost, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].UserHasLiked = liked[posts[i].Id]
	}
	return posts, nil
}

// Get returns the post with its full comment tree, projected for viewer.
func (p *Post) Get(ctx context.Context, id domain.PostId, viewer *domain.User) (domain.Post, error) {
	meta, err := p.storage.GetPost(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	flat, err := p.storage.GetComments(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}

	var likedComments map[domain.CommentId]bool
	if viewer != nil {
		likedPost, err := p.storage.LikedSubjects(ctx, viewer.Id, domain.SubjectPost, []domain.SubjectId{id})
		if err != nil {
			return domain.Post{}, err
		}
		meta.UserHasLiked = likedPost[id]

		commentIds := make([]domain.SubjectId, len(flat))
		for i, c := range flat {
			commentIds[i] = c.Id
		}
		likedComments, err = p.storage.LikedSubjects(ctx, viewer.Id, domain.SubjectComment, commentIds)
		if err != nil {
			return domain.Post{}, err
		}
	}

	return domain.Post{PostMetadata: meta, Comments: assembleTree(id, flat, likedComments)}, nil
}
