package http

import (
	"net/http"

	"github.com/jaekwang-park/habit-api/internal/http/handler"
	"github.com/jaekwang-park/habit-api/internal/metrics"
	"github.com/jaekwang-park/habit-api/internal/service"
)

// Services bundles what the router dispatches to. DB may be nil, in which
// case /health does not probe storage.
type Services struct {
	Habits      *service.HabitService
	Completions *service.CompletionService
	Stats       *service.StatsService
	DB          handler.Pinger
}

func NewRouter(svcs Services) http.Handler {
	mux := http.NewServeMux()

	// Operational endpoints live outside /api
	mux.Handle("/health", handler.NewHealthHandler(svcs.DB))
	mux.Handle("/metrics", metrics.Handler())

	habitHandler := handler.NewHabitHandler(svcs.Habits, svcs.Completions, svcs.Stats)
	mux.Handle("/api/habits", habitHandler)
	mux.Handle("/api/habits/", habitHandler)

	mux.Handle("/api/completions", handler.NewCompletionHandler(svcs.Completions))
	mux.Handle("/api/stats", handler.NewStatsHandler(svcs.Stats))

	return mux
}
