package main

import (
	"context"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"

	"framerip/internal/config"
	"framerip/internal/extract"
	"framerip/internal/logger"
)

var log = logger.Log

// runner carries the collaborators every command needs.
type runner struct {
	cfg         *config.Config
	prober      extract.DurationProber
	newCapturer func(frameSize int) extract.FrameCapturer
	in          io.Reader
	out         io.Writer
	progress    io.Writer
}

func samplingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  "start",
			Usage: "Start time in seconds",
			Value: 0,
		},
		&cli.Float64Flag{
			Name:  "end",
			Usage: "End time in seconds (default: end of video)",
		},
		&cli.Float64Flag{
			Name:  "step",
			Usage: "Time step between frames in seconds (default: 1, ignored when --count is set)",
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Total number of frames to extract",
		},
		&cli.Float64Flag{
			Name:  "duration",
			Usage: "Video duration in seconds; skips probing the file",
		},
	}
}

func ripFlags() []cli.Flag {
	return append(samplingFlags(),
		&cli.StringFlag{
			Name:    "frames-dir",
			Aliases: []string{"o"},
			Usage:   "Directory where extracted frames will be written (default: FRAMES_ROOT/<video name>)",
		},
		&cli.StringFlag{
			Name:  "records-dir",
			Usage: "Directory for plan records (default: RECORDS_DIR, else the frames directory)",
		},
		&cli.IntFlag{
			Name:  "frame-size",
			Usage: "Scale and pad frames to a square of this many pixels (0 keeps the source size)",
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Do not ask before writing into a non-empty frames directory",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Hide the progress bar",
		},
	)
}

func newApp(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "framerip",
		Usage: "Extract evenly spaced frames from videos",
		Commands: []*cli.Command{
			{
				Name:      "plan",
				Aliases:   []string{"p"},
				Usage:     "Resolve and print a sampling plan without capturing",
				ArgsUsage: "VIDEO",
				Flags: append(samplingFlags(), &cli.BoolFlag{
					Name:  "json",
					Usage: "Print the plan as JSON",
				}),
				Action: r.planAction,
			},
			{
				Name:      "rip",
				Aliases:   []string{"r"},
				Usage:     "Extract the frames of a single video",
				ArgsUsage: "VIDEO",
				Flags:     ripFlags(),
				Action:    r.ripAction,
			},
			{
				Name:      "rip-dir",
				Usage:     "Extract frames for every video in a directory",
				ArgsUsage: "DIR",
				Flags:     ripFlags(),
				Action:    r.ripDirAction,
			},
		},
	}
}

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}

	r := &runner{
		cfg:    cfg,
		prober: extract.NewFFmpeg(0),
		newCapturer: func(frameSize int) extract.FrameCapturer {
			return extract.NewFFmpeg(frameSize)
		},
		in:       os.Stdin,
		out:      os.Stdout,
		progress: os.Stderr,
	}

	if err := newApp(r).Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
