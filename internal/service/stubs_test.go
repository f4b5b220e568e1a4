package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hearth/internal/models"

	"github.com/stretchr/testify/require"
)

// Hand-written stubs for the repository interfaces. Each field defaults to a
// benign implementation via the noop constructors; tests override only what
// they exercise.

type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listFn        func(context.Context, int, int, uint) ([]*models.Post, error)
	deleteFn      func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		listFn: func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1, UserID: 1}, nil
		},
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

type likeRepoStub struct {
	applyFn            func(context.Context, uint, models.LikeTarget, uint) (*models.Like, error)
	removeFn           func(context.Context, uint, models.LikeTarget) error
	isLikedFn          func(context.Context, uint, models.LikeTarget) (bool, error)
	countForCommentsFn func(context.Context, []uint) (map[uint]int, error)
	likedCommentIDsFn  func(context.Context, uint, []uint) ([]uint, error)
}

func (s *likeRepoStub) Apply(ctx context.Context, userID uint, target models.LikeTarget, authorID uint) (*models.Like, error) {
	return s.applyFn(ctx, userID, target, authorID)
}
func (s *likeRepoStub) Remove(ctx context.Context, userID uint, target models.LikeTarget) error {
	return s.removeFn(ctx, userID, target)
}
func (s *likeRepoStub) IsLiked(ctx context.Context, userID uint, target models.LikeTarget) (bool, error) {
	return s.isLikedFn(ctx, userID, target)
}
func (s *likeRepoStub) CountForComments(ctx context.Context, ids []uint) (map[uint]int, error) {
	return s.countForCommentsFn(ctx, ids)
}
func (s *likeRepoStub) LikedCommentIDs(ctx context.Context, userID uint, ids []uint) ([]uint, error) {
	return s.likedCommentIDsFn(ctx, userID, ids)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		applyFn: func(_ context.Context, _ uint, _ models.LikeTarget, _ uint) (*models.Like, error) {
			return &models.Like{ID: 1}, nil
		},
		removeFn:  func(_ context.Context, _ uint, _ models.LikeTarget) error { return nil },
		isLikedFn: func(_ context.Context, _ uint, _ models.LikeTarget) (bool, error) { return false, nil },
		countForCommentsFn: func(_ context.Context, _ []uint) (map[uint]int, error) {
			return map[uint]int{}, nil
		},
		likedCommentIDsFn: func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
	}
}

type karmaRepoStub struct {
	topSinceFn     func(context.Context, time.Time, int) ([]models.LeaderboardEntry, error)
	totalForUserFn func(context.Context, uint) (int, error)
}

func (s *karmaRepoStub) TopSince(ctx context.Context, cutoff time.Time, limit int) ([]models.LeaderboardEntry, error) {
	return s.topSinceFn(ctx, cutoff, limit)
}
func (s *karmaRepoStub) TotalForUser(ctx context.Context, userID uint) (int, error) {
	return s.totalForUserFn(ctx, userID)
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "user"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func assertAppErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
}
