package models

import "time"

// KarmaTransaction is an immutable record of a karma event. The ledger is
// append-only except for the paired delete performed when a like is removed.
// A user's total karma is always SUM(points) over their rows; there is no
// denormalized counter anywhere to drift out of sync.
//
// SourceType + SourceID trace every point back to the Like that produced it.
type KarmaTransaction struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index:idx_karma_user_created,priority:1;index:idx_karma_created_user,priority:2" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`
	// Points is signed; +5 for a post like, +1 for a comment like.
	Points     int    `gorm:"not null" json:"points"`
	SourceType string `gorm:"size:20;not null;index:idx_karma_source" json:"source_type"`
	SourceID   uint   `gorm:"not null;index:idx_karma_source" json:"source_id"`
	// idx_karma_created_user drives the leaderboard window scan.
	CreatedAt time.Time `gorm:"index:idx_karma_user_created,priority:2;index:idx_karma_created_user,priority:1" json:"created_at"`
}

// LeaderboardEntry is one row of the karma leaderboard, already ranked.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	TotalKarma int    `json:"total_karma"`
}
