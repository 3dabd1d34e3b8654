package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v3"

	"framerip/internal/extract"
	"framerip/internal/prompt"
	"framerip/internal/record"
)

var errDeclined = errors.New("terminated by user")

type ripOptions struct {
	framesDir  string
	recordsDir string
	frameSize  int
	yes        bool
	quiet      bool
}

func ripOptionsFromFlags(cmd *cli.Command) (ripOptions, error) {
	opts := ripOptions{
		framesDir:  cmd.String("frames-dir"),
		recordsDir: cmd.String("records-dir"),
		frameSize:  cmd.Int("frame-size"),
		yes:        cmd.Bool("yes"),
		quiet:      cmd.Bool("quiet"),
	}
	if opts.frameSize < 0 {
		return opts, cli.Exit("frame-size must not be negative", 2)
	}
	return opts, nil
}

func (r *runner) ripAction(ctx context.Context, cmd *cli.Command) error {
	videoPath := cmd.Args().First()
	if videoPath == "" {
		return cli.Exit("a video path is required", 2)
	}
	opts, err := ripOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	framesDir := opts.framesDir
	if framesDir == "" {
		framesDir = extract.FramesDirForVideo(r.cfg.FramesRoot, videoPath)
	}

	err = r.ripVideo(ctx, cmd, videoPath, framesDir, opts)
	if errors.Is(err, errDeclined) {
		return cli.Exit(err.Error(), 1)
	}
	return err
}

func (r *runner) ripDirAction(ctx context.Context, cmd *cli.Command) error {
	videoDir := cmd.Args().First()
	if videoDir == "" {
		return cli.Exit("a video directory is required", 2)
	}
	opts, err := ripOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	return r.processDirectory(ctx, cmd, videoDir, opts)
}

// processDirectory rips every video file directly inside videoDir. A video
// whose frames directory the user declines to reuse is skipped.
func (r *runner) processDirectory(ctx context.Context, cmd *cli.Command, videoDir string, opts ripOptions) error {
	entries, err := os.ReadDir(videoDir)
	if err != nil {
		return fmt.Errorf("read video directory: %w", err)
	}

	root := opts.framesDir
	if root == "" {
		root = r.cfg.FramesRoot
	}

	var processed int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !extract.IsVideoFile(entry.Name()) {
			continue
		}

		inputPath := filepath.Join(videoDir, entry.Name())
		log.Infof("Extracting frames for %s", inputPath)

		err := r.ripVideo(ctx, cmd, inputPath, extract.FramesDirForVideo(root, inputPath), opts)
		if errors.Is(err, errDeclined) {
			log.WithField("video", inputPath).Info("skipped")
			continue
		}
		if err != nil {
			return fmt.Errorf("extract frames for %s: %w", entry.Name(), err)
		}

		processed++
	}

	if processed == 0 {
		return fmt.Errorf("no video files found in %s", videoDir)
	}

	return nil
}

// ripVideo resolves a plan for videoPath, records it, and captures its frames into framesDir.
func (r *runner) ripVideo(ctx context.Context, cmd *cli.Command, videoPath, framesDir string, opts ripOptions) error {
	ok, err := r.confirmFramesDir(framesDir, opts.yes)
	if err != nil {
		return err
	}
	if !ok {
		return errDeclined
	}

	plan, err := r.resolvePlan(ctx, cmd, videoPath)
	if err != nil {
		return err
	}

	recordsDir := opts.recordsDir
	if recordsDir == "" {
		recordsDir = r.cfg.RecordsDir
	}
	if recordsDir == "" {
		recordsDir = framesDir
	}
	recordPath, err := record.Write(recordsDir, extract.PlanRecordName(videoPath), record.FromPlan(videoPath, plan))
	if err != nil {
		return fmt.Errorf("write plan record: %w", err)
	}
	log.WithField("record", recordPath).Debug("plan recorded")

	ripper := extract.NewRipper(r.newCapturer(opts.frameSize), r.cfg.CaptureFormat)
	ripper.Log = log
	if !opts.quiet {
		ripper.Progress = r.progress
	}

	res, err := ripper.Rip(ctx, videoPath, framesDir, plan)
	if err != nil {
		return err
	}

	if n := len(res.Failures); n > 0 {
		log.WithFields(logrus.Fields{
			"video":  videoPath,
			"failed": n,
		}).Warnf("%d of %d frames could not be captured", n, res.Planned)
	}
	fmt.Fprintf(r.out, "%s: %d frames written to %s\n", videoPath, len(res.Frames), res.FramesDir)
	return nil
}

// confirmFramesDir asks before writing into a frames directory that already holds files.
func (r *runner) confirmFramesDir(framesDir string, yes bool) (bool, error) {
	n, err := extract.CountFiles(framesDir)
	if err != nil {
		return false, fmt.Errorf("inspect frames dir: %w", err)
	}
	if n == 0 {
		return true, nil
	}
	log.Warnf("directory %s already exists with %d files", framesDir, n)
	if yes {
		return true, nil
	}
	return prompt.Confirm(r.in, r.out, "Continue anyway?")
}
