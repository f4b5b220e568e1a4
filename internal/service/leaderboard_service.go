package service

import (
	"context"
	"time"

	"hearth/internal/cache"
	"hearth/internal/models"
	"hearth/internal/repository"
)

// LeaderboardService computes the rolling karma leaderboard from the ledger.
type LeaderboardService struct {
	karmaRepo repository.KarmaRepository
	window    time.Duration
	limit     int
	now       func() time.Time
}

func NewLeaderboardService(karmaRepo repository.KarmaRepository, windowHours, limit int) *LeaderboardService {
	if windowHours <= 0 {
		windowHours = 24
	}
	if limit <= 0 {
		limit = 5
	}
	return &LeaderboardService{
		karmaRepo: karmaRepo,
		window:    time.Duration(windowHours) * time.Hour,
		limit:     limit,
		now:       time.Now,
	}
}

// Top returns the ranked leaderboard for the window ending now. Results are
// served cache-aside with a short TTL; recomputing from the ledger is always
// safe, so a stale board self-corrects on the next miss.
func (s *LeaderboardService) Top(ctx context.Context) ([]models.LeaderboardEntry, error) {
	windowHours := int(s.window / time.Hour)
	key := cache.LeaderboardKey(windowHours, s.limit)

	entries := []models.LeaderboardEntry{}
	err := cache.Aside(ctx, key, &entries, cache.LeaderboardTTL, func() error {
		cutoff := s.now().Add(-s.window)
		fresh, err := s.karmaRepo.TopSince(ctx, cutoff, s.limit)
		if err != nil {
			return err
		}
		// Repository rows arrive ordered by karma desc, user id asc.
		for i := range fresh {
			fresh[i].Rank = i + 1
		}
		entries = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
