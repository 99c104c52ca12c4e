package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jaekwang-park/habit-api/internal/model"
	"github.com/jaekwang-park/habit-api/internal/service"
)

type CompletionHandler struct {
	svc *service.CompletionService
}

func NewCompletionHandler(svc *service.CompletionService) *CompletionHandler {
	return &CompletionHandler{svc: svc}
}

// ServeHTTP routes /api/completions
func (h *CompletionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleUpsert(w, r)
	default:
		methodNotAllowed(w)
	}
}

type upsertCompletionRequest struct {
	HabitID   int64   `json:"habitId"`
	Date      string  `json:"date"`
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes"`
}

func (h *CompletionHandler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var req upsertCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	completion, err := h.svc.Upsert(r.Context(), service.UpsertCompletionInput{
		HabitID:   req.HabitID,
		Date:      req.Date,
		Completed: req.Completed,
		Notes:     req.Notes,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, completion)
}

func (h *CompletionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	completions, err := h.svc.ListAll(r.Context(), dateRange(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, completions)
}

// dateRange reads the optional startDate/endDate query parameters. Format
// checks happen in the service.
func dateRange(r *http.Request) model.DateRange {
	q := r.URL.Query()
	return model.DateRange{
		Start: q.Get("startDate"),
		End:   q.Get("endDate"),
	}
}
