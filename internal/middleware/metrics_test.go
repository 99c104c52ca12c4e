package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jaekwang-park/habit-api/internal/metrics"
	"github.com/jaekwang-park/habit-api/internal/middleware"
)

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/habits", "/api/habits"},
		{"/api/habits/42", "/api/habits/:id"},
		{"/api/habits/42/stats", "/api/habits/:id/stats"},
		{"/api/habits/7/completions", "/api/habits/:id/completions"},
		{"/api/habits/", "/api/habits"},
		{"/api/habits/42/", "/api/habits/:id"},
		{"/api/completions", "/api/completions"},
		{"/api/stats", "/api/stats"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/api/habits/abc", "unmatched"},
		{"/api/habits/42/notes", "unmatched"},
		{"/api/habits/42/stats/extra", "unmatched"},
		{"/api/habits//stats", "unmatched"},
		{"/random/a1b2c3", "unmatched"},
		{"/wp-login.php", "unmatched"},
		{"/", "unmatched"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := middleware.RouteLabel(tt.path); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetrics_RecordsRequest(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.CollectAndCount(metrics.HTTPRequestDuration)

	req := httptest.NewRequest(http.MethodPatch, "/api/habits/99", nil)
	w := httptest.NewRecorder()
	middleware.Metrics()(inner).ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", w.Code)
	}
	if after := testutil.CollectAndCount(metrics.HTTPRequestDuration); after != before+1 {
		t.Errorf("expected one new series, before=%d after=%d", before, after)
	}
}
