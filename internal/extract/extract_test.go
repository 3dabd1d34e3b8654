package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framerip/internal/sampling"
)

func TestParseProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    float64
		wantErr bool
	}{
		{name: "seconds", out: `{"format":{"duration":"120.042000"}}`, want: 120.042},
		{name: "padded", out: `{"streams":[],"format":{"duration":" 7.5 "}}`, want: 7.5},
		{name: "missing", out: `{"format":{}}`, wantErr: true},
		{name: "not available", out: `{"format":{"duration":"N/A"}}`, wantErr: true},
		{name: "garbage", out: `duration=12`, wantErr: true},
		{name: "not a number", out: `{"format":{"duration":"abc"}}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseProbeDuration(tc.out)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		err     error
		want    float64
		wantErr bool
	}{
		{name: "ok", out: `{"format":{"duration":"42.0"}}`, want: 42},
		{name: "ffprobe fails", err: errors.New("exit status 1"), wantErr: true},
		{name: "zero duration", out: `{"format":{"duration":"0.000000"}}`, wantErr: true},
		{name: "unparseable", out: `{}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFFmpeg(0)
			f.probe = func(string, ...ffmpeg.KwArgs) (string, error) { return tc.out, tc.err }

			got, err := f.ProbeDuration(context.Background(), "clip.mp4")
			if tc.wantErr {
				var probeErr *sampling.ProbeError
				require.True(t, errors.As(err, &probeErr))
				assert.Equal(t, "clip.mp4", probeErr.Path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCaptureFrame(t *testing.T) {
	writeFrame := func(_ *ffmpeg.Stream, dest string) error {
		return os.WriteFile(dest, []byte("png"), 0o644)
	}

	tests := []struct {
		name    string
		stale   bool
		run     func(stream *ffmpeg.Stream, dest string) error
		wantErr string
	}{
		{name: "written", run: writeFrame},
		{name: "overwrites stale frame", stale: true, run: writeFrame},
		{name: "nothing written", run: func(*ffmpeg.Stream, string) error { return nil }, wantErr: "stat frame"},
		{name: "stale frame not reported as captured", stale: true, run: func(*ffmpeg.Stream, string) error { return nil }, wantErr: "stat frame"},
		{name: "empty frame", run: func(_ *ffmpeg.Stream, dest string) error { return os.WriteFile(dest, nil, 0o644) }, wantErr: "empty frame"},
		{name: "ffmpeg fails", run: func(*ffmpeg.Stream, string) error { return errors.New("exit status 1") }, wantErr: "ffmpeg capture"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "clip_frame_00004.png")
			if tc.stale {
				require.NoError(t, os.WriteFile(dest, []byte("old frame"), 0o644))
			}

			var args []string
			f := NewFFmpeg(224)
			f.run = func(stream *ffmpeg.Stream) error {
				args = stream.GetArgs()
				return tc.run(stream, dest)
			}

			err := f.CaptureFrame(context.Background(), "clip.mp4", 3.5, dest)
			assert.Contains(t, args, "3.5")
			assert.Contains(t, args, dest)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			assert.Equal(t, "png", string(data))
		})
	}
}

func TestCaptureFrameCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFFmpeg(0)
	f.run = func(*ffmpeg.Stream) error {
		t.Fatal("ffmpeg must not run after cancellation")
		return nil
	}

	err := f.CaptureFrame(ctx, "clip.mp4", 1, filepath.Join(t.TempDir(), "f.png"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "run_03", VideoName("/data/vids/run_03.MP4"))
	assert.Equal(t, filepath.Join("frames", "run_03"), FramesDirForVideo("frames", "/data/vids/run_03.mp4"))
	assert.Equal(t, "run_03_frame_00007.png", FrameName("/data/vids/run_03.mp4", 7, "png"))
	assert.Equal(t, "run_03_plan", PlanRecordName("run_03.mkv"))

	assert.True(t, IsVideoFile("a.MOV"))
	assert.True(t, IsVideoFile("a.webm"))
	assert.False(t, IsVideoFile("a.png"))
	assert.False(t, IsVideoFile("mp4"))
}

func TestCountFiles(t *testing.T) {
	dir := t.TempDir()

	n, err := CountFiles(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	n, err = CountFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
