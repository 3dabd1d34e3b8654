package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"framerip/internal/sampling"
)

func init() {
	ffmpeg.LogCompiledCommand = false
}

// DurationProber reports the total duration of a media file in seconds.
type DurationProber interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// FrameCapturer writes the frame at ts seconds of videoPath to dest.
type FrameCapturer interface {
	CaptureFrame(ctx context.Context, videoPath string, ts float64, dest string) error
}

// FFmpeg probes and captures through the ffmpeg and ffprobe binaries.
type FFmpeg struct {
	// FrameSize, when positive, scales each frame to fit a FrameSize square and pads it.
	FrameSize int

	probe func(fileName string, kwargs ...ffmpeg.KwArgs) (string, error)
	run   func(stream *ffmpeg.Stream) error
}

func NewFFmpeg(frameSize int) *FFmpeg {
	return &FFmpeg{FrameSize: frameSize, probe: ffmpeg.Probe, run: runStream}
}

func runStream(stream *ffmpeg.Stream) error {
	return stream.Run()
}

func (f *FFmpeg) ProbeDuration(ctx context.Context, path string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	out, err := f.probe(path)
	if err != nil {
		return 0, &sampling.ProbeError{Path: path, Err: err}
	}
	duration, err := parseProbeDuration(out)
	if err != nil {
		return 0, &sampling.ProbeError{Path: path, Err: err}
	}
	if duration <= 0 {
		return 0, &sampling.ProbeError{Path: path, Duration: duration}
	}
	return duration, nil
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func parseProbeDuration(out string) (float64, error) {
	var parsed probeOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	raw := strings.TrimSpace(parsed.Format.Duration)
	if raw == "" || raw == "N/A" {
		return 0, errors.New("ffprobe reported no duration")
	}
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", raw, err)
	}
	return duration, nil
}

func (f *FFmpeg) CaptureFrame(ctx context.Context, videoPath string, ts float64, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Input-side seek: fast, and lands on the requested time for a single frame.
	stream := ffmpeg.Input(videoPath, ffmpeg.KwArgs{"ss": strconv.FormatFloat(ts, 'f', -1, 64)})
	if f.FrameSize > 0 {
		// Preserve aspect ratio: scale to fit inside a square target, then pad to square
		target := f.FrameSize
		scaleStr := fmt.Sprintf("%d:%d", target, target)
		padStr := fmt.Sprintf("%d:%d:(%d-iw)/2:(%d-ih)/2", target, target, target, target)
		stream = stream.
			Filter("scale", ffmpeg.Args{scaleStr}, ffmpeg.KwArgs{"force_original_aspect_ratio": "decrease"}).
			Filter("pad", ffmpeg.Args{padStr}, ffmpeg.KwArgs{"color": "black"})
	}

	out := ffmpeg.KwArgs{"vframes": 1}
	if ext := strings.ToLower(filepath.Ext(dest)); ext == ".jpg" || ext == ".jpeg" {
		out["qscale:v"] = 1
	}
	// A frame left over from an earlier rip must not pass for this capture.
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale frame: %w", err)
	}

	err := f.run(stream.
		Output(dest, out).
		OverWriteOutput().
		Silent(true))
	if err != nil {
		return fmt.Errorf("ffmpeg capture: %w", err)
	}

	// Seeking past the last decodable frame exits cleanly without writing anything.
	info, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("stat frame: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("ffmpeg wrote an empty frame")
	}
	return nil
}
