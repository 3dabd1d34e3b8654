package daemon

import (
	"errors"
	"net/http"
	"strings"

	"framerip/internal/sampling"
)

// handlePlans godoc
// @Summary Resolve a sampling plan
// @Description Resolves start, end, step and count against a duration, given directly or probed from a video file.
// @Tags plans
// @Accept json
// @Produce json
// @Param request body PlanRequest true "Sampling request"
// @Success 200 {object} sampling.Plan
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /plans [post]
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json payload")
		return
	}

	var duration float64
	switch {
	case req.Duration != nil:
		duration = *req.Duration
	case strings.TrimSpace(req.Path) != "":
		if s.prober == nil {
			writeError(w, http.StatusServiceUnavailable, "duration probe not configured")
			return
		}
		d, err := s.prober.ProbeDuration(r.Context(), req.Path)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		duration = d
	default:
		writeError(w, http.StatusBadRequest, "duration or path is required")
		return
	}

	plan, err := s.resolver().Resolve(req.toRequest(), duration)
	if err != nil {
		var rangeErr *sampling.InvalidRangeError
		if errors.As(err, &rangeErr) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
