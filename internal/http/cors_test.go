package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateCORSMiddleware(t *testing.T) {
	t.Run("DisabledReturnsNil", func(t *testing.T) {
		middleware := createCORSMiddleware(false, "https://example.com", corsTestLogger())
		assert.Nil(t, middleware)
	})

	t.Run("EnabledWithoutOriginsReturnsNil", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "", corsTestLogger())
		assert.Nil(t, middleware)
	})

	t.Run("EnabledWithOrigins", func(t *testing.T) {
		middleware := createCORSMiddleware(
			true,
			"https://app.example.com, https://admin.example.com",
			corsTestLogger(),
		)
		assert.NotNil(t, middleware)
	})
}

func TestParseOrigins(t *testing.T) {
	t.Run("CommaSeparated", func(t *testing.T) {
		origins := parseOrigins("https://app.example.com,https://admin.example.com")
		assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, origins)
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		origins := parseOrigins(" https://app.example.com , https://admin.example.com ")
		assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, origins)
	})

	t.Run("EmptyString", func(t *testing.T) {
		assert.Nil(t, parseOrigins(""))
	})
}

func TestCORSIntegration(t *testing.T) {
	newRouter := func(middleware gin.HandlerFunc) *gin.Engine {
		router := gin.New()
		if middleware != nil {
			router.Use(middleware)
		}
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return router
	}

	t.Run("HeadersAddedWhenEnabled", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "https://app.example.com", corsTestLogger())
		router := newRouter(middleware)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "https://app.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("UnknownOriginGetsNoHeaders", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "https://app.example.com", corsTestLogger())
		router := newRouter(middleware)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("PreflightAllowsPatch", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "https://app.example.com", corsTestLogger())
		router := newRouter(middleware)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", "PATCH")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})
}
