package domain

type LeaderboardEntry struct {
	Username Username `json:"username"`
	Score    int      `json:"score"`
}

// AuthorTally counts votes received by one author's posts and comments
// inside a leaderboard window.
type AuthorTally struct {
	UserId       UserId
	Username     Username
	PostVotes    int
	CommentVotes int
}
