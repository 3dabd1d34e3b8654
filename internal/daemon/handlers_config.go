package daemon

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// handleHealth godoc
// @Summary Health check
// @Description Returns service health and version.
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// handleConfig godoc
// @Summary Get or update configuration
// @Description Returns the current sampling and capture settings on GET and updates selected fields on PUT.
// @Tags config
// @Accept json
// @Produce json
// @Param request body ConfigUpdateRequest false "Fields to update (PUT only)"
// @Success 200 {object} Config
// @Success 200 {object} StatusResponse "Update acknowledgment"
// @Failure 400 {object} ErrorResponse
// @Router /config [get]
// @Router /config [put]
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		cfg := s.config
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, cfg)
	case http.MethodPut:
		var req ConfigUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json payload")
			return
		}
		s.mu.Lock()
		cfg := s.config
		if req.SafetyMargin != nil {
			cfg.SafetyMargin = *req.SafetyMargin
		}
		if req.MinStep != nil {
			cfg.MinStep = *req.MinStep
		}
		if req.DefaultStep != nil {
			cfg.DefaultStep = *req.DefaultStep
		}
		if req.Precision != nil {
			cfg.Precision = *req.Precision
		}
		if req.CaptureFormat != nil {
			cfg.CaptureFormat = *req.CaptureFormat
		}
		if err := validate.Struct(cfg); err != nil {
			s.mu.Unlock()
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.config = cfg
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}
