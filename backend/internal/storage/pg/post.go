package pg

import (
	"context"
	"fmt"

	"github.com/playto-dev/playto/shared/domain"
	sharedpg "github.com/playto-dev/playto/shared/storage/pg"
)

const postColumns = `p.id, p.author_id, u.username, p.content, p.content_html, p.created_at, p.likes_count`

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (domain.PostMetadata, error) {
	var p domain.PostMetadata
	err := row.Scan(&p.Id, &p.Author.Id, &p.Author.Username, &p.Content, &p.ContentHTML, &p.CreatedAt, &p.LikesCount)
	return p, err
}

func (s *Storage) CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostMetadata, error) {
	post := domain.PostMetadata{
		Author:      data.Author.Author(),
		Content:     data.Content,
		ContentHTML: data.ContentHTML,
	}
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO posts(author_id, content, content_html) VALUES($1, $2, $3) RETURNING id, created_at",
		data.Author.Id, data.Content, data.ContentHTML).Scan(&post.Id, &post.CreatedAt)
	if err != nil {
		return domain.PostMetadata{}, sharedpg.ClassifyError(err, "post author")
	}
	return post, nil
}

// ListPosts returns every post, newest first.
func (s *Storage) ListPosts(ctx context.Context) ([]domain.PostMetadata, error) {
	return s.listPosts(ctx, s.db)
}

func (s *Storage) listPosts(ctx context.Context, q Querier) ([]domain.PostMetadata, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM posts p JOIN users u ON u.id = p.author_id ORDER BY p.created_at DESC, p.id DESC", postColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.PostMetadata{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

func (s *Storage) GetPost(ctx context.Context, id domain.PostId) (domain.PostMetadata, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(
		"SELECT %s FROM posts p JOIN users u ON u.id = p.author_id WHERE p.id = $1", postColumns), id)
	p, err := scanPost(row)
	if err != nil {
		return domain.PostMetadata{}, sharedpg.ClassifyError(err, fmt.Sprintf("post %d", id))
	}
	return p, nil
}
