package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sugarlog-app/sugarlog/internal/app/engagement"
	"github.com/sugarlog-app/sugarlog/internal/domain"
)

// ─── Sugar Logs ──────────────────────────────────────────────────────────────

// --- POST /api/users/{user}/logs ---

type createLogRequest struct {
	Type       string                 `json:"type"`
	Method     domain.LogMethod       `json:"method,omitempty"`
	SugarGrams *float64               `json:"sugar_grams,omitempty"`
	TimeOfDay  domain.TimeOfDay       `json:"time_of_day,omitempty"`
	Context    domain.ContextSnapshot `json:"context,omitempty"`
}

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user")

	var req createLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.svc.LogEvent(userID, engagement.LogInput{
		Type:       req.Type,
		Method:     req.Method,
		SugarGrams: req.SugarGrams,
		TimeOfDay:  req.TimeOfDay,
		Context:    req.Context,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, out)
}

// --- GET /api/users/{user}/logs ---

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user")
	limit := queryInt(r, "limit", 50)

	logs, err := s.svc.Logs(userID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"logs": logs,
	})
}

// --- POST /api/users/{user}/logs/{id}/complete ---

func (s *Server) handleCompleteAction(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user")
	logID := chi.URLParam(r, "id")

	out, err := s.svc.CompleteAction(userID, logID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// ─── Profile & Rewards ───────────────────────────────────────────────────────

// --- GET /api/users/{user}/profile ---

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user")

	state, err := s.svc.Profile(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"state":   state,
	})
}

// --- GET /api/users/{user}/rewards ---

func (s *Server) handleListRewards(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user")
	limit := queryInt(r, "limit", 50)

	rewards, err := s.svc.Rewards(userID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rewards": rewards,
	})
}

// ─── Daily Health Metrics ────────────────────────────────────────────────────

// --- PUT /api/users/{user}/health/{date} ---

type putHealthRequest struct {
	Steps        *int     `json:"steps,omitempty"`
	SleepHours   *float64 `json:"sleep_hours,omitempty"`
	AvgHeartRate *int     `json:"avg_heart_rate,omitempty"`
}

func (s *Server) handlePutHealth(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user")
	date := chi.URLParam(r, "date")

	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeDomainError(w, domain.ErrInvalidDate)
		return
	}

	var req putHealthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.svc.RecordHealth(domain.DailyHealth{
		UserID:       userID,
		Date:         date,
		Steps:        req.Steps,
		SleepHours:   req.SleepHours,
		AvgHeartRate: req.AvgHeartRate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
