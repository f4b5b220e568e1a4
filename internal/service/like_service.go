package service

import (
	"context"

	"hearth/internal/cache"
	"hearth/internal/models"
	"hearth/internal/repository"
)

// LikeService resolves a like target to its author and delegates the paired
// like-plus-karma write to the repository transaction.
type LikeService struct {
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Like applies userID's like to the target. The target's author earns karma
// atomically with the like insert; a duplicate like surfaces as DuplicateLike
// with nothing written.
func (s *LikeService) Like(ctx context.Context, userID uint, target models.LikeTarget) (*models.Like, error) {
	if !target.Valid() {
		return nil, models.NewInvalidTargetError()
	}

	authorID, err := s.resolveAuthor(ctx, target)
	if err != nil {
		return nil, err
	}

	like, err := s.likeRepo.Apply(ctx, userID, target, authorID)
	if err != nil {
		return nil, err
	}

	if target.Kind() == models.LikeTargetPost {
		cache.InvalidatePost(ctx, target.ID())
	}
	return like, nil
}

// Unlike removes userID's like from the target together with the karma it
// granted.
func (s *LikeService) Unlike(ctx context.Context, userID uint, target models.LikeTarget) error {
	if !target.Valid() {
		return models.NewInvalidTargetError()
	}

	if err := s.likeRepo.Remove(ctx, userID, target); err != nil {
		return err
	}

	if target.Kind() == models.LikeTargetPost {
		cache.InvalidatePost(ctx, target.ID())
	}
	return nil
}

func (s *LikeService) resolveAuthor(ctx context.Context, target models.LikeTarget) (uint, error) {
	if target.Kind() == models.LikeTargetPost {
		post, err := s.postRepo.GetByID(ctx, target.ID(), 0)
		if err != nil {
			return 0, err
		}
		return post.UserID, nil
	}

	comment, err := s.commentRepo.GetByID(ctx, target.ID())
	if err != nil {
		return 0, err
	}
	return comment.UserID, nil
}
