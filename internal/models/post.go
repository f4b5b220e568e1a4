// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a post in the feed. Posts are immutable after creation;
// deleting one cascades to its comments and likes at the database level,
// which is why posts are hard-deleted rather than soft-deleted.
type Post struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Body   string `gorm:"type:text;not null" json:"body"`
	UserID uint   `gorm:"not null;index:idx_posts_user_created" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `gorm:"index;index:idx_posts_user_created" json:"created_at"`
}
