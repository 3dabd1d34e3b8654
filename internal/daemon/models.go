package daemon

import (
	"errors"
	"time"

	"framerip/internal/sampling"
)

const Version = "0.1.0"

// Config holds the sampling and capture settings applied to new plans and rips.
type Config struct {
	SafetyMargin  float64 `json:"safety_margin" validate:"gte=0" example:"1.0"`
	MinStep       float64 `json:"min_step" validate:"gt=0" example:"0.001"`
	DefaultStep   float64 `json:"default_step" validate:"gt=0" example:"1.0"`
	Precision     int     `json:"precision" validate:"gte=0,lte=6" example:"3"`
	CaptureFormat string  `json:"capture_format" validate:"oneof=png jpg" example:"png"`
	FramesRoot    string  `json:"frames_root" example:"frames"`
}

// Folder represents a scanned folder whose videos were registered.
type Folder struct {
	ID        string `json:"folder_id" example:"fld_abcd1234"`
	Path      string `json:"path" example:"/videos"`
	Recursive bool   `json:"recursive" example:"true"`
	Videos    int    `json:"videos" example:"3"`
	Status    string `json:"status" example:"scanned"`
}

// Video tracks a single video and its rip progress.
type Video struct {
	ID                 string     `json:"video_id" example:"vid_abcd1234"`
	Path               string     `json:"path" example:"/videos/sample.mp4"`
	DurationSeconds    float64    `json:"duration_seconds,omitempty" example:"120.5"`
	RipStatus          string     `json:"rip_status" example:"ripping"`
	FramesCaptured     int        `json:"frames_captured" example:"80"`
	FramesFailed       int        `json:"frames_failed" example:"0"`
	TotalFramesPlanned int        `json:"total_frames_planned" example:"120"`
	FramesDir          string     `json:"frames_dir,omitempty" example:"frames/sample"`
	RecordPath         string     `json:"record_path,omitempty" example:"frames/sample/sample_plan.yaml"`
	LastRippedAt       *time.Time `json:"last_ripped_at" example:"2024-01-01T12:00:00Z"`
	LastError          *string    `json:"last_error" example:"2 frames could not be captured"`
}

// Job represents a rip of one video against one resolved plan.
type Job struct {
	ID          string                `json:"job_id" example:"job_abcd1234"`
	VideoID     string                `json:"video_id" example:"vid_abcd1234"`
	Type        string                `json:"type" example:"rip"`
	Status      string                `json:"status" example:"running"`
	Progress    float64               `json:"progress" example:"0.42"`
	Request     sampling.Request      `json:"request"`
	Diagnostics []sampling.Diagnostic `json:"diagnostics,omitempty"`
	CreatedAt   time.Time             `json:"created_at" example:"2024-01-01T12:00:00Z"`
	UpdatedAt   time.Time             `json:"updated_at" example:"2024-01-01T12:05:00Z"`
}

// ErrorResponse represents a standard error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"description of the error"`
}

// HealthResponse describes the health endpoint payload.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"0.1.0"`
}

// ConfigUpdateRequest allows partial configuration updates.
type ConfigUpdateRequest struct {
	SafetyMargin  *float64 `json:"safety_margin" example:"0.5"`
	MinStep       *float64 `json:"min_step" example:"0.01"`
	DefaultStep   *float64 `json:"default_step" example:"2.0"`
	Precision     *int     `json:"precision" example:"3"`
	CaptureFormat *string  `json:"capture_format" example:"jpg"`
}

// StatusResponse is a generic status wrapper.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// PlanRequest resolves a plan against a known duration or a probed video.
type PlanRequest struct {
	Path     string   `json:"path,omitempty" example:"/videos/sample.mp4"`
	Duration *float64 `json:"duration,omitempty" example:"120.0"`
	Start    float64  `json:"start" example:"0"`
	End      *float64 `json:"end,omitempty" example:"60"`
	Step     *float64 `json:"step,omitempty" example:"1.5"`
	Count    *int     `json:"count,omitempty" example:"5"`
}

func (r PlanRequest) toRequest() sampling.Request {
	return sampling.Request{Start: r.Start, End: r.End, Step: r.Step, Count: r.Count}
}

// AddFolderRequest is the payload to scan a folder for videos.
type AddFolderRequest struct {
	Path      string `json:"path" example:"/videos"`
	Recursive bool   `json:"recursive" example:"true"`
}

// AddFolderResponse returns the scanned folder ID.
type AddFolderResponse struct {
	FolderID string `json:"folder_id" example:"fld_abcd1234"`
	Videos   int    `json:"videos" example:"3"`
	Status   string `json:"status" example:"scanned"`
}

// AddVideoRequest registers a new video.
type AddVideoRequest struct {
	Path string `json:"path" example:"/videos/sample.mp4"`
}

// AddVideoResponse returns the created video ID.
type AddVideoResponse struct {
	VideoID string `json:"video_id" example:"vid_abcd1234"`
	Status  string `json:"status" example:"registered"`
}

// StartJobResponse provides the started job ID.
type StartJobResponse struct {
	Status string `json:"status" example:"started"`
	JobID  string `json:"job_id" example:"job_abcd1234"`
}

// CancelJobResponse indicates a cancellation attempt.
type CancelJobResponse struct {
	Status string `json:"status" example:"cancelling"`
}

var (
	errNotFound  = errors.New("not found")
	errJobActive = errors.New("a rip is already running for this video")
)
