package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"framerip/internal/extract"
	"framerip/internal/record"
	"framerip/internal/sampling"
)

// startJob schedules a rip of a video against the plan resolved from req.
func (s *Server) startJob(videoID string, req sampling.Request) (*Job, error) {
	s.mu.Lock()
	video, ok := s.videos[videoID]
	if !ok {
		s.mu.Unlock()
		return nil, errNotFound
	}
	for id, job := range s.jobs {
		if job.VideoID == videoID && s.jobCancel[id] != nil {
			s.mu.Unlock()
			return nil, errJobActive
		}
	}
	video.RipStatus = "queued"
	video.LastError = nil

	jobID := newID("job_")
	now := time.Now().UTC()
	job := &Job{
		ID:        jobID,
		VideoID:   videoID,
		Type:      "rip",
		Status:    "queued",
		Progress:  0,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.jobs[jobID] = job
	ctx, cancel := context.WithCancel(context.Background())
	s.jobCancel[jobID] = cancel
	copyJob := *job
	s.wg.Add(1)
	s.mu.Unlock()

	go s.runJob(ctx, jobID)
	return &copyJob, nil
}

// cancelJob stops the active rip of a video and marks it cancelled. The cancel func
// stays registered until runJob returns; startJob treats the video as busy until then.
func (s *Server) cancelJob(videoID string) error {
	s.mu.Lock()
	var jobID string
	for id, job := range s.jobs {
		if job.VideoID == videoID && job.Status != "cancelled" && s.jobCancel[id] != nil {
			jobID = id
			break
		}
	}
	if jobID == "" {
		s.mu.Unlock()
		return errNotFound
	}
	s.jobCancel[jobID]()
	s.mu.Unlock()

	s.markJobCancelled(jobID)
	return nil
}

// runJob probes, resolves, records and captures one video.
func (s *Server) runJob(ctx context.Context, jobID string) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		if cancel, ok := s.jobCancel[jobID]; ok {
			cancel()
			delete(s.jobCancel, jobID)
		}
		s.mu.Unlock()
	}()

	s.mu.Lock()
	job, jobExists := s.jobs[jobID]
	if !jobExists {
		s.mu.Unlock()
		return
	}
	video, videoExists := s.videos[job.VideoID]
	if !videoExists {
		s.mu.Unlock()
		return
	}
	videoPath := video.Path
	req := job.Request
	format := s.config.CaptureFormat
	framesDir := extract.FramesDirForVideo(s.config.FramesRoot, videoPath)
	recordsDir := s.recordsDir
	if recordsDir == "" {
		recordsDir = framesDir
	}
	job.Status = "running"
	job.UpdatedAt = time.Now().UTC()
	video.RipStatus = "ripping"
	s.mu.Unlock()

	log := s.log.WithFields(logrus.Fields{"job": jobID, "video": videoPath})

	duration, err := s.prober.ProbeDuration(ctx, videoPath)
	if err != nil {
		s.finishWithError(ctx, jobID, fmt.Errorf("probe duration: %w", err))
		return
	}

	plan, err := s.resolver().Resolve(req, duration)
	if err != nil {
		s.finishWithError(ctx, jobID, fmt.Errorf("resolve plan: %w", err))
		return
	}
	for _, d := range plan.Diagnostics {
		log.WithField("kind", d.Kind).Warn(d.Message)
	}

	recordPath, err := record.Write(recordsDir, extract.PlanRecordName(videoPath), record.FromPlan(videoPath, plan))
	if err != nil {
		s.finishWithError(ctx, jobID, fmt.Errorf("write plan record: %w", err))
		return
	}

	s.mu.Lock()
	job.Diagnostics = plan.Diagnostics
	job.UpdatedAt = time.Now().UTC()
	video.DurationSeconds = duration
	video.TotalFramesPlanned = plan.Count
	video.FramesCaptured = 0
	video.FramesFailed = 0
	video.FramesDir = framesDir
	video.RecordPath = recordPath
	s.mu.Unlock()

	ripper := extract.NewRipper(s.capturer, format)
	ripper.Log = s.log
	ripper.OnFrame = func(done, total int, failure *extract.CaptureFailure) {
		s.refreshJobProgress(jobID, done, total, failure != nil)
	}

	res, err := ripper.Rip(ctx, videoPath, framesDir, plan)
	if err != nil {
		s.finishWithError(ctx, jobID, fmt.Errorf("rip frames: %w", err))
		return
	}
	s.completeJob(jobID, res)
}

func (s *Server) refreshJobProgress(jobID string, done, total int, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	video := s.videos[job.VideoID]
	if failed {
		video.FramesFailed++
	} else {
		video.FramesCaptured++
	}
	if total > 0 {
		job.Progress = float64(done) / float64(total)
	}
	job.UpdatedAt = time.Now().UTC()
}

func (s *Server) completeJob(jobID string, res *extract.Result) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	if job.Status == "cancelled" {
		return
	}
	video := s.videos[job.VideoID]
	job.Status = "done"
	job.Progress = 1
	job.UpdatedAt = now
	video.RipStatus = "ripped"
	video.FramesCaptured = len(res.Frames)
	video.FramesFailed = len(res.Failures)
	video.LastRippedAt = &now
	video.LastError = nil
	if n := len(res.Failures); n > 0 {
		msg := fmt.Sprintf("%d of %d frames could not be captured", n, res.Planned)
		video.LastError = &msg
	}
}

// finishWithError fails the job, or marks it cancelled when ctx was cancelled.
func (s *Server) finishWithError(ctx context.Context, jobID string, err error) {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		s.markJobCancelled(jobID)
		return
	}
	s.failJob(jobID, err)
}

func (s *Server) failJob(jobID string, err error) {
	msg := err.Error()
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	if job.Status == "cancelled" {
		return
	}
	s.log.WithError(err).WithField("job", jobID).Error("rip failed")
	job.Status = "failed"
	job.UpdatedAt = now
	if video, exists := s.videos[job.VideoID]; exists {
		video.RipStatus = "failed"
		video.LastError = &msg
	}
}

func (s *Server) markJobCancelled(jobID string) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	job.Status = "cancelled"
	job.UpdatedAt = now
	if video, exists := s.videos[job.VideoID]; exists {
		video.RipStatus = "failed"
		msg := "cancelled"
		video.LastError = &msg
	}
}
