package server

import (
	"net/http"
	"testing"

	"hearth/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLike(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	app := newTestApp(s)

	author := createTestUser(t, db, "karma_earner")
	liker := createTestUser(t, db, "admirer")
	auth := bearerFor(t, s, liker)
	post := createTestPost(t, db, author.ID, "likeable")
	comment := createTestComment(t, db, post.ID, author.ID, nil, "likeable too")

	t.Run("post like grants author karma", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/likes", auth, map[string]uint{
			"post_id": post.ID,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var like models.Like
		decodeBody(t, resp, &like)
		require.NotNil(t, like.PostID)
		assert.Equal(t, post.ID, *like.PostID)
		assert.Equal(t, liker.ID, like.UserID)

		var txn models.KarmaTransaction
		require.NoError(t, db.Where("source_type = ? AND source_id = ?",
			models.SourcePostLike, like.ID).First(&txn).Error)
		assert.Equal(t, author.ID, txn.UserID)
		assert.Equal(t, models.PostLikePoints, txn.Points)
	})

	t.Run("duplicate like conflicts without extra karma", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/likes", auth, map[string]uint{
			"post_id": post.ID,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.KarmaTransaction{}).
			Where("user_id = ?", author.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("comment like grants one point", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/likes", auth, map[string]uint{
			"comment_id": comment.ID,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var like models.Like
		decodeBody(t, resp, &like)
		require.NotNil(t, like.CommentID)

		var txn models.KarmaTransaction
		require.NoError(t, db.Where("source_type = ? AND source_id = ?",
			models.SourceCommentLike, like.ID).First(&txn).Error)
		assert.Equal(t, models.CommentLikePoints, txn.Points)
	})

	t.Run("both targets is invalid", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/likes", auth, map[string]uint{
			"post_id":    post.ID,
			"comment_id": comment.ID,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("no target is invalid", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/likes", auth, map[string]uint{})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing target is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/likes", auth, map[string]uint{
			"post_id": 999,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("requires authentication", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/likes", "", map[string]uint{
			"post_id": post.ID,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestDeleteLike(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	app := newTestApp(s)

	author := createTestUser(t, db, "creator")
	liker := createTestUser(t, db, "fickle")
	auth := bearerFor(t, s, liker)
	post := createTestPost(t, db, author.ID, "liked then unliked")

	resp := doJSON(t, app, http.MethodPost, "/api/likes", auth, map[string]uint{
		"post_id": post.ID,
	})
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("unlike removes like and karma together", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/likes", auth, map[string]uint{
			"post_id": post.ID,
		})
		_ = resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		var likes, txns int64
		require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
		require.NoError(t, db.Model(&models.KarmaTransaction{}).Count(&txns).Error)
		assert.Zero(t, likes)
		assert.Zero(t, txns)
	})

	t.Run("unliking something never liked is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/likes", auth, map[string]uint{
			"post_id": post.ID,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
