package errors

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		respond func(c *gin.Context)
		status  int
		code    string
		message string
	}{
		{"unauthorized default", func(c *gin.Context) { Unauthorized(c, "") }, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required"},
		{"invalid credentials", InvalidCredentials, http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid email or password"},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "Not yours") }, http.StatusForbidden, ErrCodeForbidden, "Not yours"},
		{"not found", func(c *gin.Context) { NotFound(c, "File not found") }, http.StatusNotFound, ErrCodeNotFound, "File not found"},
		{"conflict", func(c *gin.Context) { Conflict(c, "") }, http.StatusConflict, ErrCodeConflict, "Resource conflict"},
		{"bad gateway", func(c *gin.Context) { BadGateway(c, "") }, http.StatusBadGateway, ErrCodeUpstreamFailure, "Upstream service failed"},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "AI service not configured") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "AI service not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.respond(c)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())

			var body APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestBadRequestWithDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	BadRequestWithDetails(c, "Invalid request body", map[string]string{"title": "required"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"code":"INVALID_INPUT","message":"Invalid request body","details":{"title":"required"}}`, w.Body.String())
}

func TestValidationDetails(t *testing.T) {
	type body struct {
		Title    string `validate:"required"`
		Progress int    `validate:"max=100"`
	}

	err := validator.New().Struct(body{Progress: 150})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"title": "required", "progress": "max=100"}, ValidationDetails(err))

	assert.Equal(t, "unexpected EOF", ValidationDetails(io.ErrUnexpectedEOF))
}
