package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/core/internal/middleware"
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/jwt"
	"github.com/inkpress/core/internal/storage"
)

const testSetupSecret = "setup-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.New()
	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.Principal(store))
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin())

	NewHandler(store, testSetupSecret).RegisterRoutes(api, admin)
	return r, store
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
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
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, store *storage.Store, username string, role models.Role) (*models.User, string) {
	t.Helper()
	u, err := store.CreateUser(storage.CreateUser{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	})
	require.NoError(t, err)
	token, err := jwt.Sign(u.ID, time.Hour)
	require.NoError(t, err)
	return u, token
}

func TestProfile(t *testing.T) {
	r, store := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	u, token := seedUser(t, store, "alice", models.RoleUser)
	w = doJSON(r, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
}

func TestAdminUserManagement(t *testing.T) {
	r, store := newTestRouter(t)
	_, adminToken := seedUser(t, store, "root", models.RoleAdmin)
	target, userToken := seedUser(t, store, "bob", models.RoleUser)

	w := doJSON(r, http.MethodGet, "/api/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)

	w = doJSON(r, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d", target.ID), adminToken, gin.H{
		"role": "editor",
		"bio":  "writes things",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.RoleEditor, updated.Role)
	assert.Equal(t, "writes things", updated.Bio)

	w = doJSON(r, http.MethodPatch, "/api/admin/users/999", adminToken, gin.H{"bio": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", target.ID), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Nil(t, store.UserByID(target.ID))
}

func TestDeactivatedUserLosesAccess(t *testing.T) {
	r, store := newTestRouter(t)
	u, token := seedUser(t, store, "alice", models.RoleUser)

	inactive := false
	_, err := store.UpdateUser(u.ID, storage.UserPatch{IsActive: &inactive})
	require.NoError(t, err)

	// the still-valid token no longer resolves to a principal
	w := doJSON(r, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPromoteToAdmin(t *testing.T) {
	r, store := newTestRouter(t)
	u, _ := seedUser(t, store, "alice", models.RoleUser)

	w := doJSON(r, http.MethodPost, "/api/promote-to-admin", "", gin.H{
		"username": "alice", "secretKey": "wrong",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/api/promote-to-admin", "", gin.H{
		"username": "nobody", "secretKey": testSetupSecret,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/api/promote-to-admin", "", gin.H{
		"username": "alice", "secretKey": testSetupSecret,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleAdmin, store.UserByID(u.ID).Role)
}

func TestPromoteDisabledWithoutSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := storage.New()
	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.Principal(store))
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	NewHandler(store, "").RegisterRoutes(api, admin)

	seedUser(t, store, "alice", models.RoleUser)
	w := doJSON(r, http.MethodPost, "/api/promote-to-admin", "", gin.H{
		"username": "alice", "secretKey": "",
	})
	// an empty secretKey fails binding; a non-empty one against an
	// unconfigured server is refused
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/promote-to-admin", "", gin.H{
		"username": "alice", "secretKey": "anything",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
