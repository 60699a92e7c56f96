package domain

type (
	UserId    = int64
	Username  = string
	Password  = string
	PostId    = int64
	CommentId = int64
	SubjectId = int64
	Content   = string
)

// SubjectKind names what a vote points at.
type SubjectKind string

const (
	SubjectPost    SubjectKind = "post"
	SubjectComment SubjectKind = "comment"
)

func (k SubjectKind) Valid() bool {
	return k == SubjectPost || k == SubjectComment
}

type VoteStatus string

const (
	VoteLiked   VoteStatus = "liked"
	VoteUnliked VoteStatus = "unliked"
)
