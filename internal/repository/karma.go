package repository

import (
	"context"
	"time"

	"hearth/internal/models"
	"hearth/internal/observability"

	"gorm.io/gorm"
)

// KarmaRepository reads the karma ledger. Writes happen only through
// LikeRepository so that likes and karma can never diverge.
type KarmaRepository interface {
	TopSince(ctx context.Context, cutoff time.Time, limit int) ([]models.LeaderboardEntry, error)
	TotalForUser(ctx context.Context, userID uint) (int, error)
}

type karmaRepository struct {
	db *gorm.DB
}

// NewKarmaRepository creates a new KarmaRepository
func NewKarmaRepository(db *gorm.DB) KarmaRepository {
	return &karmaRepository{db: db}
}

// TopSince aggregates karma earned at or after cutoff (the boundary is
// inclusive), grouped per user, and returns the top limit earners. Users are
// resolved to usernames in a second query that touches only the winners.
// Ties are broken by ascending user id so the ordering is deterministic.
func (r *karmaRepository) TopSince(ctx context.Context, cutoff time.Time, limit int) ([]models.LeaderboardEntry, error) {
	timer := time.Now()
	defer func() {
		observability.LeaderboardQueryLatency.Observe(time.Since(timer).Seconds())
	}()

	var entries []models.LeaderboardEntry
	err := r.db.WithContext(ctx).
		Model(&models.KarmaTransaction{}).
		Select("user_id, SUM(points) as total_karma").
		Where("created_at >= ?", cutoff).
		Group("user_id").
		Order("total_karma DESC, user_id ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	ids := make([]uint, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}

	var users []models.User
	if err := r.db.WithContext(ctx).
		Select("id, username").
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	for i := range entries {
		entries[i].Username = names[entries[i].UserID]
	}

	return entries, nil
}

// TotalForUser returns the user's all-time karma, summing the full ledger.
func (r *karmaRepository) TotalForUser(ctx context.Context, userID uint) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).
		Model(&models.KarmaTransaction{}).
		Select("SUM(points)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
