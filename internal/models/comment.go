// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a threaded comment on a post. Threading uses a
// self-referential parent id (adjacency list); the nested reply structure is
// materialized in memory per read, never via recursive queries.
//
// ParentID, when set, must reference a comment on the same post. Cycles are
// impossible by construction: a parent must already exist when its child is
// created.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index:idx_comments_post_created" json:"post_id"`
	Post     Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	ParentID *uint  `gorm:"index" json:"parent_id"`
	Body     string `gorm:"type:text;not null" json:"body"`
	UserID   uint   `gorm:"not null" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is populated by the service from a single grouped likes query
	LikesCount int `gorm:"-" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this comment
	Liked     bool      `gorm:"-" json:"liked"`
	CreatedAt time.Time `gorm:"index:idx_comments_post_created" json:"created_at"`
}
