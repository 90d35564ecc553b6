package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		page     int
		pageSize int
	}{
		{"defaults", "/api/members", 1, 10},
		{"limit", "/api/members?page=2&limit=25", 2, 25},
		{"pageSize alias", "/api/members?pageSize=5", 1, 5},
		{"limit wins over the alias", "/api/members?limit=15&pageSize=5", 1, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := parsePage(queryContext(t, tt.url))
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.pageSize, pageSize)
		})
	}
}
