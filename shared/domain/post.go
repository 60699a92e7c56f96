package domain

import "time"

type PostMetadata struct {
	Id           PostId    `json:"id"`
	Author       Author    `json:"author"`
	Content      Content   `json:"content"`
	ContentHTML  string    `json:"content_html"`
	CreatedAt    time.Time `json:"created_at"`
	LikesCount   int       `json:"likes_count"`
	UserHasLiked bool      `json:"user_has_liked"` // viewer-relative, never stored
}

// Post is the detail view: metadata plus the root comments with nested replies.
type Post struct {
	PostMetadata
	Comments []*Comment `json:"comments"`
}

type PostCreationData struct {
	Author      User
	Content     Content
	ContentHTML string
}
