package repository

import (
	"context"
	"errors"
	"strings"

	"hearth/internal/models"
	"hearth/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// LikeRepository applies and removes likes together with their karma effects.
//
// Apply and Remove are the only writers of the likes table and the karma
// ledger, and each runs as a single database transaction: a like row and its
// karma row are created or removed together, or not at all.
type LikeRepository interface {
	Apply(ctx context.Context, userID uint, target models.LikeTarget, authorID uint) (*models.Like, error)
	Remove(ctx context.Context, userID uint, target models.LikeTarget) error
	IsLiked(ctx context.Context, userID uint, target models.LikeTarget) (bool, error)
	CountForComments(ctx context.Context, commentIDs []uint) (map[uint]int, error)
	LikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) ([]uint, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Apply inserts a like for the target and credits the target's author with
// karma in the same transaction. Duplicate detection is left entirely to the
// unique indexes: there is no check-then-insert window. The loser of a
// concurrent race gets a DuplicateLike error straight from the constraint.
func (r *likeRepository) Apply(ctx context.Context, userID uint, target models.LikeTarget, authorID uint) (*models.Like, error) {
	if !target.Valid() {
		return nil, models.NewInvalidTargetError()
	}
	defer observability.TrackQuery("apply_like", "likes")()

	like := &models.Like{UserID: userID}
	id := target.ID()
	switch target.Kind() {
	case models.LikeTargetPost:
		like.PostID = &id
	case models.LikeTargetComment:
		like.CommentID = &id
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			if isUniqueViolation(err) {
				observability.LikeConflicts.Inc()
				return models.NewDuplicateLikeError()
			}
			if isForeignKeyViolation(err) {
				return models.NewNotFoundError(targetResource(target), id)
			}
			return models.NewInternalError(err)
		}

		grant := &models.KarmaTransaction{
			UserID:     authorID,
			Points:     target.Points(),
			SourceType: target.SourceType(),
			SourceID:   like.ID,
		}
		if err := tx.Create(grant).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.KarmaPointsGranted.WithLabelValues(target.SourceType()).Add(float64(target.Points()))
	return like, nil
}

// Remove deletes the user's like on the target and the karma row it produced,
// in one transaction. Removing a like that does not exist is NotFound.
func (r *likeRepository) Remove(ctx context.Context, userID uint, target models.LikeTarget) error {
	if !target.Valid() {
		return models.NewInvalidTargetError()
	}
	defer observability.TrackQuery("remove_like", "likes")()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like models.Like
		if err := r.scopeTarget(tx, userID, target).First(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Like", target.ID())
			}
			return models.NewInternalError(err)
		}

		if err := tx.Delete(&models.Like{}, like.ID).Error; err != nil {
			return models.NewInternalError(err)
		}

		// Exactly one ledger row was written when this like was applied.
		if err := tx.
			Where("source_type = ? AND source_id = ?", target.SourceType(), like.ID).
			Delete(&models.KarmaTransaction{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *likeRepository) IsLiked(ctx context.Context, userID uint, target models.LikeTarget) (bool, error) {
	if !target.Valid() {
		return false, models.NewInvalidTargetError()
	}
	var count int64
	if err := r.scopeTarget(r.db.WithContext(ctx), userID, target).
		Model(&models.Like{}).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// CountForComments returns like counts keyed by comment id, one grouped query
// for the whole batch.
func (r *likeRepository) CountForComments(ctx context.Context, commentIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CommentID uint
		Total     int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("comment_id, COUNT(*) as total").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, row := range rows {
		counts[row.CommentID] = row.Total
	}
	return counts, nil
}

func (r *likeRepository) LikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) ([]uint, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var liked []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &liked).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return liked, nil
}

func (r *likeRepository) scopeTarget(db *gorm.DB, userID uint, target models.LikeTarget) *gorm.DB {
	if target.Kind() == models.LikeTargetPost {
		return db.Where("user_id = ? AND post_id = ?", userID, target.ID())
	}
	return db.Where("user_id = ? AND comment_id = ?", userID, target.ID())
}

func targetResource(target models.LikeTarget) string {
	if target.Kind() == models.LikeTargetPost {
		return "Post"
	}
	return "Comment"
}

// isUniqueViolation reports whether err is a unique index violation.
// Covers pgx (SQLSTATE 23505), GORM's translated error, and the SQLite
// driver used by handler tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a foreign key violation,
// meaning the like's target row no longer exists.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return true
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
