package daemon

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"framerip/internal/extract"
)

// handleFolders godoc
// @Summary Register every video in a folder
// @Description Scans a folder (optionally recursively) and registers each video file found.
// @Tags folders
// @Accept json
// @Produce json
// @Param request body AddFolderRequest true "Folder to scan"
// @Success 200 {object} AddFolderResponse
// @Failure 400 {object} ErrorResponse
// @Router /folders [post]
func (s *Server) handleFolders(w http.ResponseWriter, r *http.Request) {
	var req AddFolderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json payload")
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	s.mu.RLock()
	if id, exists := s.folderByPath[req.Path]; exists {
		f := s.folders[id]
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, AddFolderResponse{FolderID: f.ID, Videos: f.Videos, Status: "already_exists"})
		return
	}
	s.mu.RUnlock()

	paths, err := findVideos(req.Path, req.Recursive)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, p := range paths {
		s.registerVideo(p)
	}

	folderID := newID("fld_")
	folder := Folder{
		ID:        folderID,
		Path:      req.Path,
		Recursive: req.Recursive,
		Videos:    len(paths),
		Status:    "scanned",
	}
	s.mu.Lock()
	s.folders[folderID] = folder
	s.folderByPath[req.Path] = folderID
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, AddFolderResponse{FolderID: folderID, Videos: len(paths), Status: "scanned"})
}

func findVideos(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if extract.IsVideoFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan folder: %w", err)
	}
	return paths, nil
}
