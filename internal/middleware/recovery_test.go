package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jaekwang-park/habit-api/internal/middleware"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return logger, &buf
}

func TestRecovery_NoPanic(t *testing.T) {
	logger, logBuf := newTestLogger()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	middleware.Recovery(logger)(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}
	if logBuf.Len() != 0 {
		t.Errorf("expected nothing logged, got: %s", logBuf.String())
	}
}

func TestRecovery_PanicBecomesInternalError(t *testing.T) {
	logger, logBuf := newTestLogger()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("stats blew up")
	})

	h := middleware.RequestID()(middleware.Recovery(logger)(inner))
	req := httptest.NewRequest(http.MethodGet, "/api/habits/5/stats", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-panic")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
	if got := w.Header().Get(middleware.RequestIDHeader); got != "req-panic" {
		t.Errorf("expected request id echoed, got %q", got)
	}

	var errObj map[string]string
	if err := json.NewDecoder(w.Body).Decode(&errObj); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if errObj["code"] != "INTERNAL_ERROR" || errObj["message"] != "internal server error" {
		t.Errorf("unexpected body: %v", errObj)
	}

	logs := logBuf.String()
	for _, want := range []string{
		"panic recovered",
		"request_id=req-panic",
		"route=/api/habits/:id/stats",
		`panic="stats blew up"`,
		"response_started=false",
	} {
		if !strings.Contains(logs, want) {
			t.Errorf("expected log to contain %q, got: %s", want, logs)
		}
	}
}

func TestRecovery_PanicAfterResponseStarted(t *testing.T) {
	logger, logBuf := newTestLogger()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1}`))
		panic("encoder failed halfway")
	})

	w := httptest.NewRecorder()
	middleware.Recovery(logger)(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/habits", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 (already written), got %d", w.Code)
	}
	if got := w.Body.String(); got != `[{"id":1}` {
		t.Errorf("expected no error body appended, got %q", got)
	}
	if !strings.Contains(logBuf.String(), "response_started=true") {
		t.Errorf("expected response_started=true in log, got: %s", logBuf.String())
	}
}

func TestRecovery_AbortHandlerIsRethrown(t *testing.T) {
	logger, logBuf := newTestLogger()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Errorf("expected http.ErrAbortHandler to propagate, got %v", v)
		}
		if logBuf.Len() != 0 {
			t.Errorf("expected abort not to be logged, got: %s", logBuf.String())
		}
	}()

	middleware.Recovery(logger)(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	t.Error("expected panic to propagate")
}
