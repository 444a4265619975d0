package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"dietcoach/internal/domain"
)

// handleConsoleUser returns a chat user's profile and, when the profile
// is complete, the current plan.
func (s *Server) handleConsoleUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	profile, err := s.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, errors.New("unknown user"))
		return
	}

	resp := map[string]any{"profile": profile}
	if profile.Complete() {
		latest := 0.0
		logs, err := s.weights.ListWeightsSince(r.Context(), userID, time.Time{})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if len(logs) > 0 {
			latest = logs[len(logs)-1].ValueKg
		}
		if plan, err := s.plans.Compute(profile, latest); err == nil {
			resp["plan"] = plan
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleConsoleWeights returns a chat user's most recent weight logs.
func (s *Server) handleConsoleWeights(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	limit := intQuery(r, "limit", 30)

	logs, err := s.weights.ListWeightsSince(r.Context(), userID, time.Time{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	if logs == nil {
		logs = []domain.WeightLog{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": logs})
}
