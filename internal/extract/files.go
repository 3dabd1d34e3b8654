package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// VideoName is the file name of videoPath without its extension.
func VideoName(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FramesDirForVideo is the per-video frames directory under root.
func FramesDirForVideo(root, videoPath string) string {
	return filepath.Join(root, VideoName(videoPath))
}

// FrameName names the idx-th frame of videoPath, prefixed by the video name so frames
// from different videos can share a directory.
func FrameName(videoPath string, idx int, format string) string {
	return fmt.Sprintf("%s_frame_%05d.%s", VideoName(videoPath), idx, format)
}

// PlanRecordName is the base name of the plan record for videoPath.
func PlanRecordName(videoPath string) string {
	return VideoName(videoPath) + "_plan"
}

func IsVideoFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4", ".mov", ".mkv", ".avi", ".m4v", ".webm", ".wmv":
		return true
	default:
		return false
	}
}

// CountFiles returns the number of regular entries in dir; a missing dir holds none.
func CountFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		count++
	}
	return count, nil
}
