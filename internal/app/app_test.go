package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkpress/core/internal/config"
	"github.com/inkpress/core/internal/models"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a, err := New(zap.NewNop(), &config.AppConfig{
		Port:        5000,
		Env:         "development",
		SetupSecret: "setup-secret",
		Admin: config.SeedAdmin{
			Username: "root",
			Password: "changeme1",
			Email:    "root@example.com",
		},
	})
	require.NoError(t, err)
	return a
}

func (a *App) doJSON(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Engine.ServeHTTP(w, req)
	return w
}

func loginAdmin(t *testing.T, a *App) string {
	t.Helper()
	w := a.doJSON(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "root", "password": "changeme1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Token
}

func TestSeededAdminCanLogin(t *testing.T) {
	a := newTestApp(t)
	token := loginAdmin(t, a)
	assert.NotEmpty(t, token)

	u := a.Store.UserByUsername("root")
	require.NotNil(t, u)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestPublishFlow(t *testing.T) {
	a := newTestApp(t)
	token := loginAdmin(t, a)

	w := a.doJSON(http.MethodPost, "/api/admin/categories", token, gin.H{
		"name": "Go", "slug": "go",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var cat models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cat))

	w = a.doJSON(http.MethodPost, "/api/admin/posts", token, gin.H{
		"title":       "Hello",
		"slug":        "hello",
		"content":     "first post",
		"status":      "published",
		"publishedAt": "2026-06-01 10:00:00",
		"categoryIds": []int{cat.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// the post is publicly visible and filterable by its category
	w = a.doJSON(http.MethodGet, "/api/posts?category=go", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []models.Post `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "hello", list.Data[0].Slug)
}

func TestModerationFlow(t *testing.T) {
	a := newTestApp(t)
	token := loginAdmin(t, a)

	w := a.doJSON(http.MethodPost, "/api/admin/posts", token, gin.H{
		"title": "Open", "slug": "open", "content": "c",
		"status": "published", "publishedAt": "2026-06-01 10:00:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	w = a.doJSON(http.MethodPost, "/api/comments", "", gin.H{
		"content":     "nice one",
		"postId":      post.ID,
		"authorName":  "Visitor",
		"authorEmail": "visitor@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	// invisible until approved
	w = a.doJSON(http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", post.ID), "", nil)
	assert.Equal(t, "[]", w.Body.String())

	w = a.doJSON(http.MethodPut, fmt.Sprintf("/api/admin/comments/%d", comment.ID), token, gin.H{
		"status": "approved",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.doJSON(http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", post.ID), "", nil)
	var visible []models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &visible))
	require.Len(t, visible, 1)
	assert.Equal(t, comment.ID, visible[0].ID)
}

func TestSettingsRoundTrip(t *testing.T) {
	a := newTestApp(t)
	token := loginAdmin(t, a)

	w := a.doJSON(http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var settings map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, "Blogger", settings["site_title"])

	w = a.doJSON(http.MethodPut, "/api/admin/settings", token, gin.H{"site_title": "My Blog"})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.doJSON(http.MethodGet, "/api/settings", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, "My Blog", settings["site_title"])
}

func TestStatsEndpoint(t *testing.T) {
	a := newTestApp(t)
	token := loginAdmin(t, a)

	w := a.doJSON(http.MethodGet, "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.doJSON(http.MethodGet, "/api/admin/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		UsersCount int `json:"usersCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.UsersCount)
}

func TestUnknownRoute(t *testing.T) {
	a := newTestApp(t)
	w := a.doJSON(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
