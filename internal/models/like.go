package models

import "time"

// Like represents a user's like on exactly one post or one comment.
//
// Uniqueness is enforced by the database, not by application checks: one
// partial-free unique index per target column. PostgreSQL treats NULLs as
// distinct, so a user's many comment likes (post_id NULL) never collide on
// idx_likes_user_post, and vice versa. A lost insert race surfaces as a
// unique-violation error that the repository translates to DuplicateLike.
type Like struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_likes_user_post;uniqueIndex:idx_likes_user_comment" json:"user_id"`
	PostID    *uint    `gorm:"uniqueIndex:idx_likes_user_post" json:"post_id,omitempty"`
	CommentID *uint    `gorm:"uniqueIndex:idx_likes_user_comment" json:"comment_id,omitempty"`
	Post      *Post    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Comment   *Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeTargetKind discriminates the two possible like targets.
type LikeTargetKind string

const (
	// LikeTargetPost marks a like aimed at a post.
	LikeTargetPost LikeTargetKind = "post"
	// LikeTargetComment marks a like aimed at a comment.
	LikeTargetComment LikeTargetKind = "comment"
)

// Karma points granted to the target's author per like.
const (
	PostLikePoints    = 5
	CommentLikePoints = 1
)

// Karma source types recorded on KarmaTransaction rows.
const (
	SourcePostLike    = "post_like"
	SourceCommentLike = "comment_like"
)

// LikeTarget is a tagged variant: either a post id or a comment id, never
// both and never neither. The zero value is invalid, which makes the
// "exactly one target" rule structurally impossible to violate once a
// request has been parsed into a LikeTarget.
type LikeTarget struct {
	kind LikeTargetKind
	id   uint
}

// PostTarget returns a LikeTarget aimed at the given post.
func PostTarget(postID uint) LikeTarget {
	return LikeTarget{kind: LikeTargetPost, id: postID}
}

// CommentTarget returns a LikeTarget aimed at the given comment.
func CommentTarget(commentID uint) LikeTarget {
	return LikeTarget{kind: LikeTargetComment, id: commentID}
}

// Valid reports whether the target was built through one of the constructors
// with a non-zero id.
func (t LikeTarget) Valid() bool {
	return (t.kind == LikeTargetPost || t.kind == LikeTargetComment) && t.id != 0
}

// Kind returns the target discriminator.
func (t LikeTarget) Kind() LikeTargetKind { return t.kind }

// ID returns the target entity id.
func (t LikeTarget) ID() uint { return t.id }

// Points returns the karma value a like on this target grants its author.
func (t LikeTarget) Points() int {
	if t.kind == LikeTargetPost {
		return PostLikePoints
	}
	return CommentLikePoints
}

// SourceType returns the KarmaTransaction source type for this target.
func (t LikeTarget) SourceType() string {
	if t.kind == LikeTargetPost {
		return SourcePostLike
	}
	return SourceCommentLike
}
