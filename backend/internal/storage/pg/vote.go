package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/playto-dev/playto/shared/domain"
	internal_errors "github.com/playto-dev/playto/shared/errors"
	sharedpg "github.com/playto-dev/playto/shared/storage/pg"
)

var subjectTables = map[domain.SubjectKind]string{
	domain.SubjectPost:    "posts",
	domain.SubjectComment: "comments",
}

func subjectTable(kind domain.SubjectKind) (string, error) {
	table, ok := subjectTables[kind]
	if !ok {
		return "", internal_errors.Validation("unknown subject kind %q", kind)
	}
	return pq.QuoteIdentifier(table), nil
}

// ToggleVote flips userId's vote on the subject and returns the resulting
// status and like count. The subject row is locked first, so concurrent
// toggles on one subject are serialized.
func (s *Storage) ToggleVote(ctx context.Context, userId domain.UserId, kind domain.SubjectKind, subjectId domain.SubjectId) (domain.VoteStatus, int, error) {
	table, err := subjectTable(kind)
	if err != nil {
		return "", 0, err
	}

	var (
		status domain.VoteStatus
		likes  int
	)
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		status, likes, err = s.toggleVote(ctx, tx, table, userId, kind, subjectId)
		return err
	})
	if err != nil {
		return "", 0, err
	}
	return status, likes, nil
}

func (s *Storage) toggleVote(ctx context.Context, q Querier, table string, userId domain.UserId, kind domain.SubjectKind, subjectId domain.SubjectId) (domain.VoteStatus, int, error) {
	var likes int
	err := q.QueryRowContext(ctx, fmt.Sprintf("SELECT likes_count FROM %s WHERE id = $1 FOR UPDATE", table), subjectId).Scan(&likes)
	if err != nil {
		return "", 0, sharedpg.ClassifyError(err, fmt.Sprintf("%s %d", kind, subjectId))
	}

	res, err := q.ExecContext(ctx,
		"DELETE FROM votes WHERE user_id = $1 AND subject_type = $2 AND subject_id = $3",
		userId, string(kind), subjectId)
	if err != nil {
		return "", 0, fmt.Errorf("failed to delete vote: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return "", 0, fmt.Errorf("failed to check affected rows for vote: %w", err)
	}

	if removed > 0 {
		err = q.QueryRowContext(ctx, fmt.Sprintf(
			"UPDATE %s SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1 RETURNING likes_count", table),
			subjectId).Scan(&likes)
		if err != nil {
			return "", 0, fmt.Errorf("failed to decrement likes: %w", err)
		}
		return domain.VoteUnliked, likes, nil
	}

	_, err = q.ExecContext(ctx,
		"INSERT INTO votes(user_id, subject_type, subject_id) VALUES($1, $2, $3)",
		userId, string(kind), subjectId)
	if err != nil {
		return "", 0, sharedpg.ClassifyError(err, "vote")
	}
	err = q.QueryRowContext(ctx, fmt.Sprintf(
		"UPDATE %s SET likes_count = likes_count + 1 WHERE id = $1 RETURNING likes_count", table),
		subjectId).Scan(&likes)
	if err != nil {
		return "", 0, fmt.Errorf("failed to increment likes: %w", err)
	}
	return domain.VoteLiked, likes, nil
}

// LikedSubjects reports which of ids the user has voted for.
func (s *Storage) LikedSubjects(ctx context.Context, userId domain.UserId, kind domain.SubjectKind, ids []domain.SubjectId) (map[domain.SubjectId]bool, error) {
	liked := make(map[domain.SubjectId]bool)
	if len(ids) == 0 {
		return liked, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT subject_id FROM votes WHERE user_id = $1 AND subject_type = $2 AND subject_id = ANY($3)",
		userId, string(kind), pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query liked subjects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id domain.SubjectId
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan liked subject: %w", err)
		}
		liked[id] = true
	}
	return liked, rows.Err()
}
