package api

import "github.com/playto-dev/playto/shared/domain"

// Request DTOs shared by the backend handlers and the api client

type CreatePostRequest struct {
	Content string `json:"content" validate:"required"`
}

type CreateCommentRequest struct {
	Post    domain.PostId     `json:"post" validate:"required,gt=0"`
	Parent  *domain.CommentId `json:"parent,omitempty" validate:"omitempty,gt=0"`
	Content string            `json:"content" validate:"required"`
}

// Response DTOs

type VoteResponse struct {
	Status domain.VoteStatus `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
