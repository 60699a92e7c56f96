package service

import (
	"context"
	"testing"
	"time"

	"github.com/playto-dev/playto/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommunityScenario drives the services together the way the API does:
// register, post, like, reply, then read the tree and the leaderboard.
func TestCommunityScenario(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newMemStore(clock.Now)

	auth := newTestAuth(store, &MockTokenIssuer{})
	board := NewLeaderboard(store, LeaderboardConfig{
		Size: 5, Window: 24 * time.Hour, CacheTTL: time.Minute, PostWeight: 5, CommentWeight: 1,
	}, clock.Now)
	posts := NewPost(store, plainText{}, 10000)
	comments := NewComment(store, plainText{}, 10000)
	votes := NewVote(store, board)

	register := func(name string) domain.User {
		id, err := auth.Register(ctx, domain.Credentials{Username: name, Password: "password"})
		require.NoError(t, err)
		return domain.User{Id: id, Username: name}
	}
	alice, bob, charlie := register("alice"), register("bob"), register("charlie")

	post, err := posts.Create(ctx, domain.PostCreationData{Author: alice, Content: "Hello playground"})
	require.NoError(t, err)

	status, err := votes.Toggle(ctx, &bob, domain.SubjectPost, post.Id)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteLiked, status)

	root, err := comments.Create(ctx, domain.CommentCreationData{Author: bob, PostId: post.Id, Content: "Nice"})
	require.NoError(t, err)
	reply, err := comments.Create(ctx, domain.CommentCreationData{Author: alice, PostId: post.Id, ParentId: &root.Id, Content: "Thanks"})
	require.NoError(t, err)
	_, err = comments.Create(ctx, domain.CommentCreationData{Author: charlie, PostId: post.Id, ParentId: &reply.Id, Content: "+1"})
	require.NoError(t, err)

	_, err = votes.Toggle(ctx, &alice, domain.SubjectComment, root.Id)
	require.NoError(t, err)
	_, err = votes.Toggle(ctx, &charlie, domain.SubjectComment, root.Id)
	require.NoError(t, err)

	full, err := posts.Get(ctx, post.Id, &bob)
	require.NoError(t, err)
	assert.Equal(t, 1, full.LikesCount)
	assert.True(t, full.UserHasLiked)
	require.Len(t, full.Comments, 1)
	assert.Equal(t, 2, full.Comments[0].LikesCount)
	assert.False(t, full.Comments[0].UserHasLiked, "bob did not like his own comment")
	require.Len(t, full.Comments[0].Replies, 1)
	require.Len(t, full.Comments[0].Replies[0].Replies, 1)
	assert.Equal(t, "+1", full.Comments[0].Replies[0].Replies[0].Content)

	top, err := board.Top(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{
		{Username: "alice", Score: 5},
		{Username: "bob", Score: 2},
	}, top)

	// bob changes his mind; the cached leaderboard follows
	status, err = votes.Toggle(ctx, &bob, domain.SubjectPost, post.Id)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteUnliked, status)

	top, err = board.Top(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{{Username: "bob", Score: 2}}, top)

	list, err := posts.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].LikesCount)
	assert.False(t, list[0].UserHasLiked)
}
