// Package api exposes HTTP handlers for the activity tracker.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"example.com/activitytracker/internal/auth"
	"example.com/activitytracker/internal/domain"
	"example.com/activitytracker/internal/parser"
	"example.com/activitytracker/internal/persistence"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/messages", h.ingestMessage)
	mux.HandleFunc("/v1/activities", h.listActivities)
	mux.HandleFunc("/v1/activities/", h.activityByID)
	mux.HandleFunc("/v1/stats", h.statistics)
	mux.HandleFunc("/v1/parse/suggestions", h.suggestions)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) ingestMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeActivitiesWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope activities:write required")
		return
	}

	var req IngestMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	raw := parser.RawMessage{
		MessageID:   req.MessageID,
		PhoneNumber: req.PhoneNumber,
		Body:        req.Body,
		ReceivedAt:  req.ReceivedAt,
	}

	aggregate, replay, err := h.service.ProcessMessage(r.Context(), raw)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyMessage) {
			resp := UnparseableMessageResponse{
				Type:        "unparseable_message",
				Detail:      "message body could not be parsed into an activity",
				Suggestions: toSuggestionViews(h.service.Suggest(req.Body)),
			}
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	status := http.StatusCreated
	if replay {
		status = http.StatusOK
	}
	writeJSON(w, status, IngestMessageResponse{
		Activity: toActivityView(*aggregate),
		Replay:   replay,
	})
}

func (h *Handler) activityByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/activities/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing activity id")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeActivitiesRead) && !claims.HasScope(auth.ScopeActivitiesWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope activities:read required")
		return
	}

	aggregate, err := h.service.GetActivity(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "activity not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toActivityView(*aggregate))
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeActivitiesRead) && !claims.HasScope(auth.ScopeActivitiesWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope activities:read required")
		return
	}

	phoneNumber := r.URL.Query().Get("phone_number")
	if phoneNumber == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing phone_number parameter")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	cursorToken := r.URL.Query().Get("cursor")
	cursor, err := persistence.DecodeCursor(cursorToken)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	aggregates, next, err := h.service.ListActivities(r.Context(), phoneNumber, cursor, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	items := make([]ActivityView, 0, len(aggregates))
	for _, agg := range aggregates {
		items = append(items, toActivityView(agg))
	}

	writeJSON(w, http.StatusOK, ListActivitiesResponse{
		Items:      items,
		NextCursor: persistence.EncodeCursor(next),
	})
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeActivitiesRead) && !claims.HasScope(auth.ScopeActivitiesWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope activities:read required")
		return
	}

	phoneNumber := r.URL.Query().Get("phone_number")
	if phoneNumber == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing phone_number parameter")
		return
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			if parsed > 365 {
				parsed = 365
			}
			days = parsed
		}
	}

	stats, err := h.service.GetStatistics(r.Context(), phoneNumber, days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toStatisticsView(stats))
}

func (h *Handler) suggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeActivitiesRead) && !claims.HasScope(auth.ScopeActivitiesWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope activities:read required")
		return
	}

	var req SuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	writeJSON(w, http.StatusOK, SuggestionsResponse{
		Suggestions: toSuggestionViews(h.service.Suggest(req.Text)),
	})
}

// IngestMessageRequest is the payload for POST /v1/messages.
type IngestMessageRequest struct {
	MessageID   string    `json:"message_id"`
	PhoneNumber string    `json:"phone_number"`
	Body        string    `json:"body"`
	ReceivedAt  time.Time `json:"received_at"`
}

// Validate ensures request correctness.
func (r IngestMessageRequest) Validate() error {
	if strings.TrimSpace(r.MessageID) == "" {
		return errors.New("message_id is required")
	}
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return errors.New("phone_number is required")
	}
	return nil
}

// IngestMessageResponse describes the response body for ingest.
type IngestMessageResponse struct {
	Activity ActivityView `json:"activity"`
	Replay   bool         `json:"idempotent_replay"`
}

// UnparseableMessageResponse carries formatting advice for rejected bodies.
type UnparseableMessageResponse struct {
	Type        string           `json:"type"`
	Detail      string           `json:"detail"`
	Suggestions []SuggestionView `json:"suggestions"`
}

// ActivityView exposes full details about an activity.
type ActivityView struct {
	ActivityID   string    `json:"activity_id"`
	PhoneNumber  string    `json:"phone_number"`
	ActivityType string    `json:"activity_type"`
	Description  string    `json:"description"`
	DurationMin  *int      `json:"duration_min,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Confidence   float64   `json:"confidence"`
	Status       string    `json:"status"`
	RecordedAt   time.Time `json:"recorded_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListActivitiesResponse packages list results.
type ListActivitiesResponse struct {
	Items      []ActivityView `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// SuggestionsRequest is the payload for POST /v1/parse/suggestions.
type SuggestionsRequest struct {
	Text string `json:"text"`
}

// SuggestionView describes one classification candidate.
type SuggestionView struct {
	ActivityType string `json:"activity_type"`
	Score        int    `json:"score"`
	Reason       string `json:"reason"`
}

// SuggestionsResponse packages ranked candidates.
type SuggestionsResponse struct {
	Suggestions []SuggestionView `json:"suggestions"`
}

// StatisticsView summarises a user's history over a trailing window.
type StatisticsView struct {
	PhoneNumber            string         `json:"phone_number"`
	Days                   int            `json:"days"`
	TotalActivities        int            `json:"total_activities"`
	ByType                 map[string]int `json:"by_type"`
	TotalDurationMinutes   int            `json:"total_duration_minutes"`
	AverageDurationMinutes float64        `json:"average_duration_minutes"`
	WithDuration           int            `json:"with_duration"`
	WithLocation           int            `json:"with_location"`
	UniqueLocations        []string       `json:"unique_locations"`
	DailyCounts            map[string]int `json:"daily_counts"`
	MostActiveDay          string         `json:"most_active_day,omitempty"`
	Insights               []string       `json:"insights"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toActivityView(agg domain.ActivityAggregate) ActivityView {
	return ActivityView{
		ActivityID:   agg.ID,
		PhoneNumber:  agg.PhoneNumber,
		ActivityType: string(agg.ActivityType),
		Description:  agg.Description,
		DurationMin:  agg.DurationMin,
		Location:     agg.Location,
		Confidence:   agg.Confidence,
		Status:       string(agg.State),
		RecordedAt:   agg.RecordedAt,
		CreatedAt:    agg.CreatedAt,
		UpdatedAt:    agg.UpdatedAt,
	}
}

func toSuggestionViews(suggestions []parser.Suggestion) []SuggestionView {
	views := make([]SuggestionView, 0, len(suggestions))
	for _, s := range suggestions {
		views = append(views, SuggestionView{
			ActivityType: string(s.CandidateType),
			Score:        s.Score,
			Reason:       s.Reason,
		})
	}
	return views
}

func toStatisticsView(stats domain.Statistics) StatisticsView {
	return StatisticsView{
		PhoneNumber:            stats.PhoneNumber,
		Days:                   stats.Days,
		TotalActivities:        stats.TotalActivities,
		ByType:                 stats.ByType,
		TotalDurationMinutes:   stats.TotalDurationMinutes,
		AverageDurationMinutes: stats.AverageDurationMinutes,
		WithDuration:           stats.WithDuration,
		WithLocation:           stats.WithLocation,
		UniqueLocations:        stats.UniqueLocations,
		DailyCounts:            stats.DailyCounts,
		MostActiveDay:          stats.MostActiveDay,
		Insights:               stats.Insights,
	}
}
