package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// These cover the request-validation paths, which resolve before any
// storage access.
func newSocialRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{}
	router := gin.New()
	router.POST("/api/follow", h.Follow)
	router.DELETE("/api/follow", h.Unfollow)
	router.POST("/api/communities/:id/join", h.JoinCommunity)
	router.POST("/api/posts", h.CreatePost)
	router.POST("/api/posts/:id/like", h.LikePost)
	router.POST("/api/posts/:id/comments", h.CreateComment)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, method, path string, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFollowRejectsBadRequests(t *testing.T) {
	router := newSocialRouter()
	userID := primitive.NewObjectID().Hex()

	// Missing fields.
	w := postJSON(t, router, http.MethodPost, "/api/follow", map[string]string{"user_id": userID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed followee id.
	w = postJSON(t, router, http.MethodPost, "/api/follow", map[string]string{
		"user_id":       userID,
		"followee_id":   "not-a-hex-id",
		"followeeModel": "users",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown discriminator: only the two collection names are accepted.
	w = postJSON(t, router, http.MethodPost, "/api/follow", map[string]string{
		"user_id":       userID,
		"followee_id":   primitive.NewObjectID().Hex(),
		"followeeModel": "posts",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Self-follow.
	w = postJSON(t, router, http.MethodPost, "/api/follow", map[string]string{
		"user_id":       userID,
		"followee_id":   userID,
		"followeeModel": "users",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSocialHandlersRejectMalformedIDs(t *testing.T) {
	router := newSocialRouter()
	body := map[string]string{"user_id": primitive.NewObjectID().Hex(), "content": "hello", "comment_content": "hi"}

	w := postJSON(t, router, http.MethodPost, "/api/communities/bad-id/join", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, http.MethodPost, "/api/posts/bad-id/like", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, http.MethodPost, "/api/posts/bad-id/comments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, http.MethodPost, "/api/posts", map[string]string{"user_id": "bad-id", "content": "hello"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, http.MethodPost, "/api/posts", map[string]string{"user_id": primitive.NewObjectID().Hex()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
