package service

import (
	"context"

	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/errors"
	"github.com/playto-dev/playto/shared/logger"
)

type CommentService interface {
	Create(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error)
}

type CommentStorage interface {
	// CreateComment must check the post and parent and insert atomically.
	CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error)
}

type Comment struct {
	storage       CommentStorage
	content       ContentProcessor
	maxContentLen int
}

func NewComment(storage CommentStorage, content ContentProcessor, maxContentLen int) *Comment {
	return &Comment{storage: storage, content: content, maxContentLen: maxContentLen}
}

func (c *Comment) Create(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	if data.Author.Id == 0 {
		return domain.Comment{}, errors.Unauthorized("Please sign in to comment")
	}
	if data.PostId <= 0 {
		return domain.Comment{}, errors.NotFound("post %d not found", data.PostId)
	}
	if data.ParentId != nil && *data.ParentId <= 0 {
		return domain.Comment{}, errors.NotFound("parent comment %d not found", *data.ParentId)
	}
	content, html, err := prepareContent(c.content, data.Content, c.maxContentLen)
	if err != nil {
		return domain.Comment{}, err
	}
	data.Content, data.ContentHTML = content, html

	comment, err := c.storage.CreateComment(ctx, data)
	if err != nil {
		return domain.Comment{}, err
	}
	if comment.Replies == nil {
		comment.Replies = []*domain.Comment{}
	}
	contentCreatedTotal.WithLabelValues("comment").Inc()
	logger.Log.Info("comment created", "component", "comment", "comment_id", comment.Id, "post_id", comment.PostId, "author", data.Author.Username)
	return comment, nil
}
