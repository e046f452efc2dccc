package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(buf *bytes.Buffer, options ...LoggerOption) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := gin.New()
	r.Use(NewLogging(logger, options...))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		lines = append(lines, record)
	}
	return lines
}

func TestLogging_levels(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf, WithDefaultLevel(slog.LevelDebug))

	for _, path := range []string{"/ok", "/missing", "/broken"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	lines := logLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "GET /ok", lines[0]["msg"])
	assert.Equal(t, "/ok", lines[0]["route"])
	assert.Equal(t, "WARN", lines[1]["level"])
	assert.Equal(t, 404.0, lines[1]["status"])
	assert.Equal(t, "ERROR", lines[2]["level"])
}

func TestLogging_ignored_paths_still_log_errors(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf, WithIgnorePath([]string{"/ok", "/broken"}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "GET /broken", lines[0]["msg"])
}
