package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/academic-hub-api/internal/constants"
)

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(4)
	require.NoError(t, err)
	b, err := RandomHex(4)
	require.NoError(t, err)

	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"", 1, constants.DefaultPageSize, 0},
		{"page=3&limit=10", 3, 10, 20},
		{"page=0&limit=1000", 1, constants.DefaultPageSize, 0},
		{"page=abc", 1, constants.DefaultPageSize, 0},
		{"skip=40&limit=20", 3, 20, 40},
		{"skip=-5&limit=10", 1, 10, 0},
		{"skip=40&page=2&limit=20", 2, 20, 20},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

		params := GetPaginationParams(c)
		assert.Equal(t, tt.wantPage, params.Page, tt.query)
		assert.Equal(t, tt.wantLimit, params.Limit, tt.query)
		assert.Equal(t, tt.wantOffset, params.Offset, tt.query)
	}
}

func TestNewPaginationResponse(t *testing.T) {
	tests := []struct {
		limit     int
		total     int64
		wantPages int
	}{
		{20, 0, 0},
		{20, 20, 1},
		{20, 21, 2},
		{0, 15, 0},
	}

	for _, tt := range tests {
		resp := NewPaginationResponse(PaginationParams{Page: 1, Limit: tt.limit}, tt.total)
		assert.Equal(t, tt.wantPages, resp.TotalPages)
		assert.Equal(t, tt.total, resp.Total)
	}
}
