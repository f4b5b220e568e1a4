package repository

import (
	"context"
	"errors"
	"testing"

	"hearth/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	return appErr.Code
}

func TestLikeRepository_Apply_PostLike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`INSERT INTO "karma_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20))
	mock.ExpectCommit()

	like, err := repo.Apply(ctx, 1, models.PostTarget(7), 2)
	require.NoError(t, err)
	require.NotNil(t, like.PostID)
	assert.Equal(t, uint(7), *like.PostID)
	assert.Nil(t, like.CommentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Apply_DuplicateFromConstraint(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	// The second concurrent insert loses to the unique index; no karma row
	// must be written and the transaction must roll back.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "likes"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_likes_user_post"})
	mock.ExpectRollback()

	_, err := repo.Apply(ctx, 1, models.PostTarget(7), 2)
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicateLike, appErrCode(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Apply_TargetGone(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "likes"`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_likes_post"})
	mock.ExpectRollback()

	_, err := repo.Apply(ctx, 1, models.PostTarget(404), 2)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, appErrCode(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Apply_InvalidTarget(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewLikeRepository(db)

	// Zero-value target: no SQL may be issued at all.
	_, err := repo.Apply(context.Background(), 1, models.LikeTarget{}, 2)
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidTarget, appErrCode(t, err))
}

func TestLikeRepository_Remove_DeletesLikeAndKarmaTogether(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "comment_id"}).AddRow(10, 1, 5))
	mock.ExpectExec(`DELETE FROM "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "karma_transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Remove(ctx, 1, models.CommentTarget(5))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Remove_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "likes"`).
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectRollback()

	err := repo.Remove(ctx, 1, models.PostTarget(7))
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, appErrCode(t, err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_CountForComments(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT comment_id, COUNT\(\*\) as total FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "total"}).
			AddRow(1, 3).
			AddRow(4, 1))

	counts, err := repo.CountForComments(ctx, []uint{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 3, counts[1])
	assert.Equal(t, 1, counts[4])
	assert.Zero(t, counts[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_CountForComments_EmptyInput(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewLikeRepository(db)

	counts, err := repo.CountForComments(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, counts)
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: likes.user_id, likes.post_id")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(nil))
}
