package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGinMiddleware_CountsByRoutePattern(t *testing.T) {
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/items/:id", "204"))
	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/items/:id", "204"))
	assert.Equal(t, before+2, after)
}

func TestGinMiddleware_Unmatched(t *testing.T) {
	r := gin.New()
	r.Use(GinMiddleware())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestRecordUpload(t *testing.T) {
	ok := testutil.ToFloat64(ImageUploads.WithLabelValues("success"))
	failed := testutil.ToFloat64(ImageUploads.WithLabelValues("failure"))

	RecordUpload(nil)
	RecordUpload(errors.New("cdn down"))

	assert.Equal(t, ok+1, testutil.ToFloat64(ImageUploads.WithLabelValues("success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(ImageUploads.WithLabelValues("failure")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	InquiriesReceived.Inc()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "agency_inquiries_received_total"))
}
