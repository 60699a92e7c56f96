package domain

import "time"

type Comment struct {
	Id           CommentId  `json:"id"`
	PostId       PostId     `json:"post"`
	ParentId     *CommentId `json:"parent"` // nil for root comments
	Author       Author     `json:"author"`
	Content      Content    `json:"content"`
	ContentHTML  string     `json:"content_html"`
	CreatedAt    time.Time  `json:"created_at"`
	LikesCount   int        `json:"likes_count"`
	UserHasLiked bool       `json:"user_has_liked"`
	Replies      []*Comment `json:"replies"`
}

type CommentCreationData struct {
	Author      User
	PostId      PostId
	ParentId    *CommentId
	Content     Content
	ContentHTML string
}

// Walk visits every comment in the forest depth first, parents before replies.
// Returning false from fn stops the walk.
func Walk(comments []*Comment, fn func(c *Comment) bool) bool {
	for _, c := range comments {
		if !fn(c) {
			return false
		}
		if !Walk(c.Replies, fn) {
			return false
		}
	}
	return true
}
