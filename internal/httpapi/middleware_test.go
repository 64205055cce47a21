package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		origins []string
		want    string
	}{
		{[]string{"http://localhost:5173"}, "http://localhost:5173"},
		{[]string{"*"}, "*"},
	} {
		r := gin.New()
		r.Use(CORS(tc.origins))
		r.POST("/api/cart", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNoContent)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.want {
			t.Fatalf("unexpected allow-origin header: got=%q want=%q", got, tc.want)
		}
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin header %q", got)
	}
}

func TestRequestIDAndLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.New(core)))
	r.GET("/api/cart/:sessionId", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/cart/secret-session", nil)
	req.Header.Set(headerRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(headerRequestID); got != "req-123" {
		t.Fatalf("request id not echoed: %q", got)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["path"] != "/api/cart/:sessionId" || fields["request_id"] != "req-123" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if fields["session"] == "secret-session" {
		t.Fatal("session id logged in clear text")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart/x", nil))
	if rec.Header().Get(headerRequestID) == "" {
		t.Fatal("request id not generated")
	}
}
