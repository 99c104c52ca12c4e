package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jaekwang-park/habit-api/internal/model"
	"github.com/jaekwang-park/habit-api/internal/service"
)

type HabitHandler struct {
	habits      *service.HabitService
	completions *service.CompletionService
	stats       *service.StatsService
}

func NewHabitHandler(habits *service.HabitService, completions *service.CompletionService, stats *service.StatsService) *HabitHandler {
	return &HabitHandler{habits: habits, completions: completions, stats: stats}
}

// ServeHTTP routes /api/habits, /api/habits/{id} and the per-habit
// completions and stats views.
func (h *HabitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/habits")
	path = strings.Trim(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			methodNotAllowed(w)
		}
		return
	}

	parts := strings.SplitN(path, "/", 2)
	habitID, ok := parseID(parts[0])
	if !ok {
		WriteError(w, http.StatusBadRequest, "INVALID_ID", "habit id must be a positive integer")
		return
	}
	subPath := ""
	if len(parts) > 1 {
		subPath = parts[1]
	}

	switch subPath {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.handleGetByID(w, r, habitID)
		case http.MethodPatch:
			h.handleUpdate(w, r, habitID)
		case http.MethodDelete:
			h.handleDelete(w, r, habitID)
		default:
			methodNotAllowed(w)
		}
	case "completions":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.handleListCompletions(w, r, habitID)
	case "stats":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.handleStats(w, r, habitID)
	default:
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	}
}

type createHabitRequest struct {
	Name         string      `json:"name"`
	Description  *string     `json:"description"`
	Icon         model.Icon  `json:"icon"`
	Color        model.Color `json:"color"`
	Weekdays     string      `json:"weekdays"`
	ReminderTime *string     `json:"reminderTime"`
	UserID       *int64      `json:"userId"`
}

func (h *HabitHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	habit, err := h.habits.Create(r.Context(), service.CreateHabitInput{
		Name:         req.Name,
		Description:  req.Description,
		Icon:         req.Icon,
		Color:        req.Color,
		Weekdays:     req.Weekdays,
		ReminderTime: req.ReminderTime,
		UserID:       req.UserID,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, habit)
}

func (h *HabitHandler) handleList(w http.ResponseWriter, r *http.Request) {
	habits, err := h.habits.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) handleGetByID(w http.ResponseWriter, r *http.Request, habitID int64) {
	habit, err := h.habits.GetByID(r.Context(), habitID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, habit)
}

// nullable tells an absent field apart from an explicit null. encoding/json
// only calls UnmarshalJSON when the key is present, null included.
type nullable[T any] struct {
	Present bool
	Value   *T
}

func (n *nullable[T]) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n nullable[T]) isNull() bool { return n.Present && n.Value == nil }

// updateHabitRequest is a PATCH body. Required fields treat null like
// absent; the optional ones are cleared by an explicit null.
type updateHabitRequest struct {
	Name         *string          `json:"name"`
	Description  nullable[string] `json:"description"`
	Icon         *model.Icon      `json:"icon"`
	Color        *model.Color     `json:"color"`
	Weekdays     *string          `json:"weekdays"`
	ReminderTime nullable[string] `json:"reminderTime"`
	UserID       nullable[int64]  `json:"userId"`
}

func (h *HabitHandler) handleUpdate(w http.ResponseWriter, r *http.Request, habitID int64) {
	var req updateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	habit, err := h.habits.Update(r.Context(), habitID, service.UpdateHabitInput{
		Name:         req.Name,
		Description:  req.Description.Value,
		Icon:         req.Icon,
		Color:        req.Color,
		Weekdays:     req.Weekdays,
		ReminderTime: req.ReminderTime.Value,
		UserID:       req.UserID.Value,

		ClearDescription:  req.Description.isNull(),
		ClearReminderTime: req.ReminderTime.isNull(),
		ClearUserID:       req.UserID.isNull(),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) handleDelete(w http.ResponseWriter, r *http.Request, habitID int64) {
	if err := h.habits.Delete(r.Context(), habitID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HabitHandler) handleListCompletions(w http.ResponseWriter, r *http.Request, habitID int64) {
	completions, err := h.completions.ListForHabit(r.Context(), habitID, dateRange(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, completions)
}

func (h *HabitHandler) handleStats(w http.ResponseWriter, r *http.Request, habitID int64) {
	snapshot, err := h.stats.ForHabit(r.Context(), habitID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}
