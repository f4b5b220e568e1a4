package server

import (
	"fmt"
	"net/http"
	"testing"

	"hearth/internal/models"
	"hearth/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	app := newTestApp(s)

	author := createTestUser(t, db, "commenter")
	auth := bearerFor(t, s, author)
	post := createTestPost(t, db, author.ID, "discuss")
	otherPost := createTestPost(t, db, author.ID, "unrelated")

	t.Run("creates top-level comment", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", auth, map[string]any{
			"body": "great point",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var comment models.Comment
		decodeBody(t, resp, &comment)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Nil(t, comment.ParentID)
		assert.Equal(t, "commenter", comment.User.Username)
	})

	t.Run("creates threaded reply", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", auth, map[string]any{
			"body":      "replying",
			"parent_id": 1,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var reply models.Comment
		decodeBody(t, resp, &reply)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, uint(1), *reply.ParentID)
	})

	t.Run("rejects parent from another post", func(t *testing.T) {
		parent := createTestComment(t, db, otherPost.ID, author.ID, nil, "elsewhere")

		resp := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", auth, map[string]any{
			"body":      "crossing the streams",
			"parent_id": parent.ID,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects missing parent", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", auth, map[string]any{
			"body":      "orphan reply",
			"parent_id": 999,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", auth, map[string]any{
			"body": "",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing post is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/posts/999/comments", auth, map[string]any{
			"body": "into the void",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetComments(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	app := newTestApp(s)

	author := createTestUser(t, db, "threader")
	post := createTestPost(t, db, author.ID, "threaded discussion")

	root := createTestComment(t, db, post.ID, author.ID, nil, "root")
	reply := createTestComment(t, db, post.ID, author.ID, &root.ID, "reply")
	createTestComment(t, db, post.ID, author.ID, &reply.ID, "nested reply")
	createTestComment(t, db, post.ID, author.ID, nil, "second root")

	t.Run("returns nested tree", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts/1/comments", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var tree []*service.CommentNode
		decodeBody(t, resp, &tree)
		require.Len(t, tree, 2)

		assert.Equal(t, "root", tree[0].Body)
		require.Len(t, tree[0].Replies, 1)
		assert.Equal(t, "reply", tree[0].Replies[0].Body)
		require.Len(t, tree[0].Replies[0].Replies, 1)
		assert.Equal(t, "nested reply", tree[0].Replies[0].Replies[0].Body)

		assert.Equal(t, "second root", tree[1].Body)
		assert.Empty(t, tree[1].Replies)
	})

	t.Run("empty post yields empty array", func(t *testing.T) {
		bare := createTestPost(t, db, author.ID, "no comments yet")

		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", bare.ID), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var tree []*service.CommentNode
		decodeBody(t, resp, &tree)
		assert.NotNil(t, tree)
		assert.Empty(t, tree)
	})

	t.Run("missing post is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/posts/999/comments", "", nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteComment(t *testing.T) {
	t.Parallel()

	db := setupHandlerTestDB(t)
	s := newTestServer(t, db, nil)
	app := newTestApp(s)

	owner := createTestUser(t, db, "author")
	stranger := createTestUser(t, db, "passerby")
	post := createTestPost(t, db, owner.ID, "with comment")
	comment := createTestComment(t, db, post.ID, owner.ID, nil, "to be removed")

	t.Run("non-owner is forbidden", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/comments/1", bearerFor(t, s, stranger), nil)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner deletes", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodDelete, "/api/comments/1", bearerFor(t, s, owner), nil)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count).Error)
		assert.Zero(t, count)
	})
}
