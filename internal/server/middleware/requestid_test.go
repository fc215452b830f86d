package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c.Request.Context()))
	})
	return router
}

func TestRequestIDReachesContextAndResponse(t *testing.T) {
	router := newRequestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	header := w.Header().Get(RequestIDHeader)
	if header == "" {
		t.Fatal("expected a generated request id in the response header")
	}
	if w.Body.String() != header {
		t.Errorf("context id = %q, header = %q; they must agree", w.Body.String(), header)
	}
}

func TestRequestIDHonorsCallerSuppliedID(t *testing.T) {
	router := newRequestIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set(RequestIDHeader, "caller-id-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "caller-id-123" {
		t.Errorf("response header = %q, want the caller-supplied id", got)
	}
	if w.Body.String() != "caller-id-123" {
		t.Errorf("context id = %q, want the caller-supplied id", w.Body.String())
	}
}

func TestRequestIDAbsentWithoutMiddleware(t *testing.T) {
	if got := RequestIDFromContext(t.Context()); got != "" {
		t.Errorf("RequestIDFromContext on a bare context = %q, want empty", got)
	}
}
