package service

import (
	"context"

	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/errors"
	"github.com/playto-dev/playto/shared/logger"
)

type VoteService interface {
	Toggle(ctx context.Context, actor *domain.User, kind domain.SubjectKind, subjectId domain.SubjectId) (domain.VoteStatus, error)
}

type VoteStorage interface {
	// ToggleVote must lock the subject, flip the vote and adjust likes_count
	// in one transaction. It returns the new status and like count.
	ToggleVote(ctx context.Context, userId domain.UserId, kind domain.SubjectKind, subjectId domain.SubjectId) (domain.VoteStatus, int, error)
}

// Invalidator is notified after every successful toggle.
type Invalidator interface {
	Invalidate()
}

type Vote struct {
	storage     VoteStorage
	invalidator Invalidator
}

func NewVote(storage VoteStorage, invalidator Invalidator) *Vote {
	return &Vote{storage: storage, invalidator: invalidator}
}

func (v *Vote) Toggle(ctx context.Context, actor *domain.User, kind domain.SubjectKind, subjectId domain.SubjectId) (domain.VoteStatus, error) {
	if actor == nil {
		return "", errors.Unauthorized("Please sign in to vote")
	}
	if !kind.Valid() {
		return "", errors.Validation("invalid model type %q", kind)
	}
	if subjectId <= 0 {
		return "", errors.NotFound("%s %d not found", kind, subjectId)
	}

	status, likes, err := v.storage.ToggleVote(ctx, actor.Id, kind, subjectId)
	if err != nil {
		return "", err
	}

	votesToggledTotal.WithLabelValues(string(kind), string(status)).Inc()
	if v.invalidator != nil {
		v.invalidator.Invalidate()
	}
	logger.Log.Debug("vote toggled", "component", "vote", "user_id", actor.Id, "subject", kind, "subject_id", subjectId, "status", status, "likes", likes)
	return status, nil
}
