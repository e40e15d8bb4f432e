package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGinLogger_WritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.InfoLevel)
	defer Init("info")

	router := gin.New()
	router.Use(GinLogger())
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/missing?x=1", nil)
	router.ServeHTTP(w, req)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/missing", line["path"])
	assert.Equal(t, "x=1", line["query"])
	assert.EqualValues(t, 404, line["status"])
}

func TestGinRecovery_Returns500(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.InfoLevel)
	defer Init("info")

	router := gin.New()
	router.Use(GinRecovery())
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/boom", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "panic recovered")
}
