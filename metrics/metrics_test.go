package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware_UsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCollector()
	r := gin.New()
	r.Use(c.GinMiddleware())
	r.GET("/api/users/:id", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	for _, path := range []string{"/api/users/1", "/api/users/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "/api/users/:id", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestCounters(t *testing.T) {
	c := NewCollector()
	c.RecordAuthAttempt("doctor", true)
	c.RecordAuthAttempt("doctor", false)
	c.RecordAuthAttempt("doctor", false)
	c.RecordChatBooking(true)
	c.SetChatDrafts(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.authAttemptsTotal.WithLabelValues("doctor", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.chatBookingsTotal.WithLabelValues("success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.chatDraftsActive))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.RecordAuthAttempt("admin", true)

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `smartcare_auth_attempts_total{role="admin",status="success"} 1`)
}
