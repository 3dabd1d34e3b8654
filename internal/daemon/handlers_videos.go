package daemon

import (
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"framerip/internal/extract"
	"framerip/internal/sampling"
)

// handleVideos godoc
// @Summary List or register videos
// @Description GET lists tracked videos; POST registers a new video for ripping.
// @Tags videos
// @Accept json
// @Produce json
// @Param request body AddVideoRequest true "Video to register"
// @Success 200 {array} Video
// @Success 200 {object} AddVideoResponse
// @Failure 400 {object} ErrorResponse
// @Router /videos [get]
// @Router /videos [post]
func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		list := make([]Video, 0, len(s.videos))
		for _, v := range s.videos {
			copyVideo := *v
			list = append(list, copyVideo)
		}
		s.mu.RUnlock()
		sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var req AddVideoRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json payload")
			return
		}
		if strings.TrimSpace(req.Path) == "" {
			writeError(w, http.StatusBadRequest, "path is required")
			return
		}
		if !extract.IsVideoFile(req.Path) {
			writeError(w, http.StatusBadRequest, "path is not a supported video file")
			return
		}
		id, created := s.registerVideo(req.Path)
		status := "registered"
		if !created {
			status = "already_exists"
		}
		writeJSON(w, http.StatusOK, AddVideoResponse{VideoID: id, Status: status})
	}
}

// registerVideo tracks path and returns its ID, reusing the ID of a known path.
func (s *Server) registerVideo(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, exists := s.videoByPath[path]; exists {
		return id, false
	}
	videoID := newID("vid_")
	s.videos[videoID] = &Video{
		ID:        videoID,
		Path:      path,
		RipStatus: "pending",
	}
	s.videoByPath[path] = videoID
	return videoID, true
}

// handleGetVideo godoc
// @Summary Get video details
// @Description Returns stored metadata and rip status for a video.
// @Tags videos
// @Produce json
// @Param videoID path string true "Video ID"
// @Success 200 {object} Video
// @Failure 404 {object} ErrorResponse
// @Router /videos/{videoID} [get]
func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	s.mu.RLock()
	video, ok := s.videos[videoID]
	if ok {
		copyVideo := *video
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, copyVideo)
		return
	}
	s.mu.RUnlock()
	writeError(w, http.StatusNotFound, "video not found")
}

// handleRip godoc
// @Summary Start a rip job
// @Description Probes the video, resolves the sampling request, writes the plan record and captures every planned frame.
// @Tags videos
// @Accept json
// @Produce json
// @Param videoID path string true "Video ID"
// @Param request body sampling.Request false "Sampling request"
// @Success 200 {object} StartJobResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /videos/{videoID}/rip [post]
func (s *Server) handleRip(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	if s.prober == nil || s.capturer == nil {
		writeError(w, http.StatusServiceUnavailable, "media backend not configured")
		return
	}
	var req sampling.Request
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid json payload")
		return
	}
	job, err := s.startJob(videoID, req)
	if err != nil {
		switch {
		case errors.Is(err, errNotFound):
			writeError(w, http.StatusNotFound, "video not found")
		case errors.Is(err, errJobActive):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, StartJobResponse{Status: "started", JobID: job.ID})
}

// handleCancel godoc
// @Summary Cancel rip job
// @Description Attempts to cancel an active rip for the given video.
// @Tags videos
// @Produce json
// @Param videoID path string true "Video ID"
// @Success 200 {object} CancelJobResponse
// @Failure 404 {object} ErrorResponse
// @Router /videos/{videoID}/cancel [post]
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	if err := s.cancelJob(videoID); err != nil {
		if errors.Is(err, errNotFound) {
			writeError(w, http.StatusNotFound, "video not found or no active job")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CancelJobResponse{Status: "cancelling"})
}

// handleVideoFile streams a registered video's file contents.
func (s *Server) handleVideoFile(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	s.mu.RLock()
	video, ok := s.videos[videoID]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}
	if strings.TrimSpace(video.Path) == "" {
		writeError(w, http.StatusNotFound, "video path missing")
		return
	}

	http.ServeFile(w, r, video.Path)
}
