package apiclient

import (
	"context"
	"fmt"

	"github.com/playto-dev/playto/shared/api"
	"github.com/playto-dev/playto/shared/domain"
)

func (c *APIClient) ListPosts(ctx context.Context, token string) ([]domain.PostMetadata, error) {
	var posts []domain.PostMetadata
	if err := c.doJSON(ctx, "GET", "/posts/", token, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *APIClient) GetPost(ctx context.Context, token string, id domain.PostId) (domain.Post, error) {
	var post domain.Post
	if err := c.doJSON(ctx, "GET", fmt.Sprintf("/posts/%d/", id), token, nil, &post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

func (c *APIClient) CreatePost(ctx context.Context, token string, content domain.Content) (domain.PostMetadata, error) {
	var post domain.PostMetadata
	if err := c.doJSON(ctx, "POST", "/posts/", token, api.CreatePostRequest{Content: content}, &post); err != nil {
		return domain.PostMetadata{}, err
	}
	return post, nil
}

func (c *APIClient) CreateComment(ctx context.Context, token string, req api.CreateCommentRequest) (domain.Comment, error) {
	var comment domain.Comment
	if err := c.doJSON(ctx, "POST", "/comments/", token, req, &comment); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func (c *APIClient) ToggleVote(ctx context.Context, token string, kind domain.SubjectKind, id domain.SubjectId) (domain.VoteStatus, error) {
	var resp api.VoteResponse
	if err := c.doJSON(ctx, "POST", fmt.Sprintf("/vote/%s/%d/", kind, id), token, nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (c *APIClient) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	if err := c.doJSON(ctx, "GET", "/leaderboard/", "", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
