package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	PostKeyPrefix        = "post:%d"
	LeaderboardKeyPrefix = "leaderboard:%dh:%d"
)

const (
	UserTTL = 5 * time.Minute
	PostTTL = 30 * time.Minute
	// LeaderboardTTL is deliberately short: the board is recomputed from the
	// karma ledger and a little staleness is acceptable.
	LeaderboardTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// LeaderboardKey identifies a cached board by window size and entry limit.
func LeaderboardKey(windowHours, limit int) string {
	return fmt.Sprintf(LeaderboardKeyPrefix, windowHours, limit)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
