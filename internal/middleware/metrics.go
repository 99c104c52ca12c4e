package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/jaekwang-park/habit-api/internal/metrics"
)

// Metrics records request latency by method, route and status.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newResponseRecorder(w)

			next.ServeHTTP(rec, r)

			metrics.RecordHTTPRequest(r.Method, RouteLabel(r.URL.Path), rec.status, time.Since(start))
		})
	}
}

// UnmatchedRoute labels every path the router does not serve.
const UnmatchedRoute = "unmatched"

// RouteLabel maps a request path onto one of the routes the router serves,
// with habit IDs collapsed to ":id". Anything else is UnmatchedRoute so
// arbitrary paths cannot grow the label set.
func RouteLabel(path string) string {
	switch path {
	case "/api/habits", "/api/habits/":
		return "/api/habits"
	case "/api/completions", "/api/stats", "/health", "/metrics":
		return path
	}

	rest, ok := strings.CutPrefix(path, "/api/habits/")
	if !ok {
		return UnmatchedRoute
	}
	parts := strings.Split(strings.TrimSuffix(rest, "/"), "/")
	if !isDigits(parts[0]) {
		return UnmatchedRoute
	}
	switch {
	case len(parts) == 1:
		return "/api/habits/:id"
	case len(parts) == 2 && (parts[1] == "completions" || parts[1] == "stats"):
		return "/api/habits/:id/" + parts[1]
	}
	return UnmatchedRoute
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
