package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/academic-hub-api/internal/constants"
	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubAuthenticator struct {
	users map[string]*models.User
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	if user, ok := s.users[token]; ok {
		return user, nil
	}
	return nil, errors.New("invalid token")
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRequireAuth(t *testing.T) {
	auth := stubAuthenticator{users: map[string]*models.User{
		"good-token":  {ID: 7, Name: "Student"},
		"admin-token": {ID: 1, Name: "Admin", IsAdmin: true},
	}}

	router := setupRouter()
	router.GET("/me", RequireAuth(auth), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		require.True(t, ok)
		actor, ok := GetActor(c)
		require.True(t, ok)
		assert.Equal(t, userID, actor.ID)
		c.JSON(http.StatusOK, gin.H{"id": userID, "admin": actor.IsAdmin})
	})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good-token", status: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good-token", status: http.StatusOK, body: `{"id":7,"admin":false}`},
		{name: "scheme is case insensitive", header: "bearer admin-token", status: http.StatusOK, body: `{"id":1,"admin":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(constants.AuthorizationHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestGetUserID_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)
	_, ok = CurrentUser(c)
	assert.False(t, ok)
	_, ok = GetActor(c)
	assert.False(t, ok)
}

func TestRequireID(t *testing.T) {
	router := setupRouter()
	router.GET("/goals/:id", RequireID("id"), func(c *gin.Context) {
		id, ok := GetID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, status := range map[string]int{
		"/goals/42":  http.StatusOK,
		"/goals/0":   http.StatusBadRequest,
		"/goals/-1":  http.StatusBadRequest,
		"/goals/abc": http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, status, w.Code, path)
	}
}

func TestResourceTypeMiddleware(t *testing.T) {
	router := setupRouter()
	handler := func(c *gin.Context) {
		resourceType, ok := GetResourceType(c)
		require.True(t, ok)
		c.String(http.StatusOK, string(resourceType))
	}
	router.GET("/papers", WithResourceType(models.ResourceTypePaper), handler)
	router.GET("/bookmarks/check/:resource_type", RequireResourceTypeParam("resource_type"), handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/papers", nil))
	assert.Equal(t, "paper", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookmarks/check/syllabus", nil))
	assert.Equal(t, "syllabus", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookmarks/check/video", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	router := setupRouter()
	router.Use(RequestLogger(logger.NewFromZap(zap.New(core))))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(constants.RequestIDHeader, "req-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(constants.RequestIDHeader))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.NotEmpty(t, w.Header().Get(constants.RequestIDHeader))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "/fail", entries[1].ContextMap()["path"])
}
