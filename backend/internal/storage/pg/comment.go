package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/playto-dev/playto/shared/domain"
	internal_errors "github.com/playto-dev/playto/shared/errors"
	sharedpg "github.com/playto-dev/playto/shared/storage/pg"
)

// CreateComment checks the post and parent and inserts in one transaction,
// so a rejected comment leaves nothing behind.
func (s *Storage) CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	var comment domain.Comment
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		comment, err = s.createComment(ctx, tx, data)
		return err
	})
	return comment, err
}

func (s *Storage) createComment(ctx context.Context, q Querier, data domain.CommentCreationData) (domain.Comment, error) {
	var postId domain.PostId
	err := q.QueryRowContext(ctx, "SELECT id FROM posts WHERE id = $1 FOR SHARE", data.PostId).Scan(&postId)
	if err != nil {
		return domain.Comment{}, sharedpg.ClassifyError(err, fmt.Sprintf("post %d", data.PostId))
	}

	if data.ParentId != nil {
		var parentPost domain.PostId
		err := q.QueryRowContext(ctx, "SELECT post_id FROM comments WHERE id = $1 FOR SHARE", *data.ParentId).Scan(&parentPost)
		if err != nil {
			return domain.Comment{}, sharedpg.ClassifyError(err, fmt.Sprintf("parent comment %d", *data.ParentId))
		}
		if parentPost != data.PostId {
			return domain.Comment{}, internal_errors.Validation("parent comment %d belongs to another post", *data.ParentId)
		}
	}

	comment := domain.Comment{
		PostId:      data.PostId,
		ParentId:    data.ParentId,
		Author:      data.Author.Author(),
		Content:     data.Content,
		ContentHTML: data.ContentHTML,
		Replies:     []*domain.Comment{},
	}
	err = q.QueryRowContext(ctx,
		`INSERT INTO comments(post_id, parent_id, author_id, content, content_html)
		 VALUES($1, $2, $3, $4, $5) RETURNING id, created_at`,
		data.PostId, nullableId(data.ParentId), data.Author.Id, data.Content, data.ContentHTML,
	).Scan(&comment.Id, &comment.CreatedAt)
	if err != nil {
		return domain.Comment{}, sharedpg.ClassifyError(err, "comment")
	}
	return comment, nil
}

// GetComments returns the flat comment list of a post ordered by creation.
func (s *Storage) GetComments(ctx context.Context, postId domain.PostId) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.post_id, c.parent_id, c.author_id, u.username, c.content, c.content_html, c.created_at, c.likes_count
		 FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = $1
		 ORDER BY c.created_at, c.id`, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		var parent sql.NullInt64
		if err := rows.Scan(&c.Id, &c.PostId, &parent, &c.Author.Id, &c.Author.Username,
			&c.Content, &c.ContentHTML, &c.CreatedAt, &c.LikesCount); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if parent.Valid {
			id := parent.Int64
			c.ParentId = &id
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}

func nullableId(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
