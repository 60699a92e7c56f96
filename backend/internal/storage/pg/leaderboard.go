package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/playto-dev/playto/shared/domain"
)

// VoteTallies counts, per author, the votes cast in [since, until] on that
// author's posts and comments.
func (s *Storage) VoteTallies(ctx context.Context, since, until time.Time) ([]domain.AuthorTally, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username,
		       COUNT(*) FILTER (WHERE v.subject_type = 'post') AS post_votes,
		       COUNT(*) FILTER (WHERE v.subject_type = 'comment') AS comment_votes
		FROM votes v
		LEFT JOIN posts p ON v.subject_type = 'post' AND p.id = v.subject_id
		LEFT JOIN comments c ON v.subject_type = 'comment' AND c.id = v.subject_id
		JOIN users u ON u.id = COALESCE(p.author_id, c.author_id)
		WHERE v.created_at >= $1 AND v.created_at <= $2
		GROUP BY u.id, u.username
		ORDER BY u.id`, since, until)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote tallies: %w", err)
	}
	defer rows.Close()

	tallies := []domain.AuthorTally{}
	for rows.Next() {
		var t domain.AuthorTally
		if err := rows.Scan(&t.UserId, &t.Username, &t.PostVotes, &t.CommentVotes); err != nil {
			return nil, fmt.Errorf("failed to scan vote tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vote tallies: %w", err)
	}
	return tallies, nil
}
