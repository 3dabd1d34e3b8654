package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"framerip/internal/logger"
	"framerip/internal/sampling"
)

// CaptureFailure records a timestamp whose frame could not be captured.
type CaptureFailure struct {
	Index     int
	Timestamp float64
	Path      string
	Err       error
}

func (f *CaptureFailure) Error() string {
	return fmt.Sprintf("capture frame %d at %gs: %v", f.Index, f.Timestamp, f.Err)
}

func (f *CaptureFailure) Unwrap() error {
	return f.Err
}

// Result summarises one rip of a plan.
type Result struct {
	FramesDir string
	Planned   int
	Frames    []string
	Failures  []*CaptureFailure
}

// Ripper captures every timestamp of a plan, one at a time, in ascending order.
type Ripper struct {
	Capturer FrameCapturer
	Format   string
	Log      logrus.FieldLogger

	// Progress, when set, receives a progress bar.
	Progress io.Writer
	// OnFrame, when set, is called after every capture attempt.
	OnFrame func(done, total int, failure *CaptureFailure)
}

func NewRipper(capturer FrameCapturer, format string) *Ripper {
	return &Ripper{
		Capturer: capturer,
		Format:   format,
		Log:      logger.Log,
	}
}

// Rip writes the frames of plan for videoPath into framesDir. A failed capture is
// logged and recorded in the result; the remaining timestamps are still attempted.
// Cancelling ctx stops the rip between frames and returns the partial result.
func (r *Ripper) Rip(ctx context.Context, videoPath, framesDir string, plan sampling.Plan) (*Result, error) {
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create frames dir: %w", err)
	}

	log := r.Log
	if log == nil {
		log = logger.Log
	}
	log = log.WithField("video", videoPath)

	res := &Result{FramesDir: framesDir, Planned: len(plan.Timestamps)}

	var bar *progressbar.ProgressBar
	if r.Progress != nil {
		bar = newProgressBar(r.Progress, res.Planned, VideoName(videoPath))
		defer func() { _ = bar.Finish() }()
	}

	for idx, ts := range plan.Timestamps {
		if err := ctx.Err(); err != nil {
			log.WithField("captured", len(res.Frames)).Warn("rip cancelled")
			return res, err
		}

		dest := filepath.Join(framesDir, FrameName(videoPath, idx, r.Format))
		var failure *CaptureFailure
		if err := r.Capturer.CaptureFrame(ctx, videoPath, ts, dest); err != nil {
			failure = &CaptureFailure{Index: idx, Timestamp: ts, Path: dest, Err: err}
			res.Failures = append(res.Failures, failure)
			log.WithError(err).WithField("timestamp", ts).Warn("could not capture frame")
		} else {
			res.Frames = append(res.Frames, dest)
			log.WithFields(logrus.Fields{"timestamp": ts, "frame": dest}).Debug("frame captured")
		}

		if bar != nil {
			_ = bar.Add(1)
		}
		if r.OnFrame != nil {
			r.OnFrame(idx+1, res.Planned, failure)
		}
	}

	log.WithFields(logrus.Fields{
		"frames_dir": framesDir,
		"captured":   len(res.Frames),
		"failed":     len(res.Failures),
	}).Info("frames extracted")

	return res, nil
}

func newProgressBar(w io.Writer, max int, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowCount(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]/[reset]",
			SaucerHead:    "[green]/[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
