package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
)

var internalErrorBody = map[string]string{
	"code":    "INTERNAL_ERROR",
	"message": "internal server error",
}

// Recovery turns a handler panic into a 500 with the usual error body.
// http.ErrAbortHandler is passed through so net/http can drop the
// connection quietly.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newResponseRecorder(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logger.Error("panic recovered",
					"request_id", GetRequestID(r),
					"method", r.Method,
					"route", RouteLabel(r.URL.Path),
					"panic", v,
					"response_started", rec.wroteHeader,
					"stack", string(debug.Stack()),
				)

				if rec.wroteHeader {
					return
				}
				rec.Header().Set("Content-Type", "application/json")
				rec.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(rec).Encode(internalErrorBody); err != nil {
					logger.Error("failed to write recovery response", "error", err)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
