// Package server exposes the planner as a JSON API under /api/v1.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/at-ishikawa/studyplan/internal/allocation"
	"github.com/at-ishikawa/studyplan/internal/calendar"
	"github.com/at-ishikawa/studyplan/internal/mastery"
	"github.com/at-ishikawa/studyplan/internal/planner"
	"github.com/at-ishikawa/studyplan/internal/validation"
)

const (
	APIPrefix     = "/api/v1"
	OwnerIDHeader = "X-Owner-ID"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

type ImportSubjectsRequest struct {
	Subjects []mastery.Subject `json:"subjects"`
}

type SetStatusRequest struct {
	Status mastery.Status `json:"status"`
}

type RecordQuestionsRequest struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// RelocateRequest requires both fields.
type RelocateRequest struct {
	Date      *calendar.Date      `json:"date"`
	StartTime *calendar.ClockTime `json:"start_time"`
}

type CompleteRequest struct {
	Completed bool `json:"completed"`
}

// Handler serves the planner operations.
type Handler struct {
	planner      planner.Planner
	defaultOwner string
	mux          *http.ServeMux
}

// NewHandler registers every route. Requests without an X-Owner-ID header act on defaultOwner.
func NewHandler(p planner.Planner, defaultOwner string) *Handler {
	h := &Handler{
		planner:      p,
		defaultOwner: defaultOwner,
		mux:          http.NewServeMux(),
	}
	h.route(http.MethodGet, "/subjects", h.listSubjects)
	h.route(http.MethodPost, "/subjects/import", h.importSubjects)
	h.route(http.MethodGet, "/topics", h.listTopics)
	h.route(http.MethodPost, "/topics", h.addTopic)
	h.route(http.MethodPut, "/topics/{id}/status", h.setTopicStatus)
	h.route(http.MethodPost, "/topics/{id}/review", h.completeReview)
	h.route(http.MethodPost, "/topics/{id}/questions", h.recordQuestions)
	h.route(http.MethodGet, "/due", h.dueTopics)
	h.route(http.MethodGet, "/tasks", h.listTasks)
	h.route(http.MethodPost, "/tasks", h.createTask)
	h.route(http.MethodDelete, "/tasks/{id}", h.deleteTask)
	h.route(http.MethodPut, "/tasks/{id}/schedule", h.relocateTask)
	h.route(http.MethodDelete, "/tasks/{id}/schedule", h.unscheduleTask)
	h.route(http.MethodPut, "/tasks/{id}/completed", h.completeTask)
	h.route(http.MethodGet, "/tasks/{id}/buckets", h.taskBuckets)
	h.route(http.MethodGet, "/grid", h.dayGrid)
	h.route(http.MethodGet, "/overlaps", h.overlaps)
	h.route(http.MethodGet, "/stats", h.stats)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, ownerID string) error

func (h *Handler) route(method, path string, fn handlerFunc) {
	h.mux.HandleFunc(method+" "+APIPrefix+path, func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Header.Get(OwnerIDHeader)
		if ownerID == "" {
			ownerID = h.defaultOwner
		}
		if err := fn(w, r, ownerID); err != nil {
			writeError(w, r, err)
		}
	})
}

func (h *Handler) listSubjects(w http.ResponseWriter, r *http.Request, ownerID string) error {
	subjects, err := h.planner.ListSubjects(r.Context(), ownerID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, nonNil(subjects))
}

func (h *Handler) importSubjects(w http.ResponseWriter, r *http.Request, ownerID string) error {
	var req ImportSubjectsRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	subjects, err := h.planner.ImportSubjects(r.Context(), ownerID, req.Subjects)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, subjects)
}

func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request, ownerID string) error {
	var status mastery.Status
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, err := mastery.ParseStatus(s)
		if err != nil {
			return err
		}
		status = parsed
	}
	topics, err := h.planner.ListTopics(r.Context(), ownerID, status)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, nonNil(topics))
}

func (h *Handler) addTopic(w http.ResponseWriter, r *http.Request, ownerID string) error {
	var req planner.TopicInput
	if err := decode(r, &req); err != nil {
		return err
	}
	topic, err := h.planner.AddTopic(r.Context(), ownerID, req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, topic)
}

func (h *Handler) setTopicStatus(w http.ResponseWriter, r *http.Request, ownerID string) error {
	var req SetStatusRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	topic, err := h.planner.SetTopicStatus(r.Context(), ownerID, r.PathValue("id"), req.Status)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, topic)
}

func (h *Handler) completeReview(w http.ResponseWriter, r *http.Request, ownerID string) error {
	topic, err := h.planner.CompleteReview(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, topic)
}

func (h *Handler) recordQuestions(w http.ResponseWriter, r *http.Request, ownerID string) error {
	var req RecordQuestionsRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	topic, err := h.planner.RecordQuestions(r.Context(), ownerID, r.PathValue("id"), req.Total, req.Correct)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, topic)
}

func (h *Handler) dueTopics(w http.ResponseWriter, r *http.Request, ownerID string) error {
	topics, err := h.planner.DueTopics(r.Context(), ownerID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, nonNil(topics))
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request, ownerID string) error {
	tasks, err := h.planner.ListTasks(r.Context(), ownerID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, nonNil(tasks))
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request, ownerID string) error {
	var req planner.TaskInput
	if err := decode(r, &req); err != nil {
		return err
	}
	task, err := h.planner.CreateTask(r.Context(), ownerID, req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request, ownerID string) error {
	if err := h.planner.DeleteTask(r.Context(), ownerID, r.PathValue("id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) relocateTask(w http.ResponseWriter, r *http.Request, ownerID string) error {
	var req RelocateRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	if req.Date == nil {
		return validation.Errorf("date", "is required")
	}
	if req.StartTime == nil {
		return validation.Errorf("start_time", "is required")
	}
	task, err := h.planner.RelocateTask(r.Context(), ownerID, r.PathValue("id"), *req.Date, *req.StartTime)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, task)
}

func (h *Handler) unscheduleTask(w http.ResponseWriter, r *http.Request, ownerID string) error {
	task, err := h.planner.UnscheduleTask(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, task)
}

func (h *Handler) completeTask(w http.ResponseWriter, r *http.Request, ownerID string) error {
	var req CompleteRequest
	if err := decode(r, &req); err != nil {
		return err
	}
	task, err := h.planner.CompleteTask(r.Context(), ownerID, r.PathValue("id"), req.Completed)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, task)
}

func (h *Handler) taskBuckets(w http.ResponseWriter, r *http.Request, ownerID string) error {
	fills, err := h.planner.TaskBuckets(r.Context(), ownerID, r.PathValue("id"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, fills)
}

func (h *Handler) dayGrid(w http.ResponseWriter, r *http.Request, ownerID string) error {
	date, err := queryDate(r, "date")
	if err != nil {
		return err
	}
	grid, err := h.planner.DayGrid(r.Context(), ownerID, date)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, grid)
}

func (h *Handler) overlaps(w http.ResponseWriter, r *http.Request, ownerID string) error {
	from, to, err := queryRange(r)
	if err != nil {
		return err
	}
	overlaps, err := h.planner.Overlaps(r.Context(), ownerID, from, to)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, nonNil(overlaps))
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request, ownerID string) error {
	from, to, err := queryRange(r)
	if err != nil {
		return err
	}
	summary, err := h.planner.Stats(r.Context(), ownerID, from, to)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, summary)
}

func queryDate(r *http.Request, key string) (calendar.Date, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return calendar.Date{}, validation.Errorf(key, "is required")
	}
	date, err := calendar.ParseDate(value)
	if err != nil {
		return calendar.Date{}, validation.Errorf(key, "%v", err)
	}
	return date, nil
}

func queryRange(r *http.Request) (calendar.Date, calendar.Date, error) {
	from, err := queryDate(r, "from")
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	to, err := queryDate(r, "to")
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	return from, to, nil
}

func decode(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return validation.Errorf("body", "%v", err)
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("json.Marshal(response) > %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
	return nil
}

// StatusCode maps a planner error to the HTTP status it is reported with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, validation.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, mastery.ErrTopicNotFound), errors.Is(err, allocation.ErrTaskNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		slog.Default().Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}
