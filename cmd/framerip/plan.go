package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"

	"framerip/internal/sampling"
)

func requestFromFlags(cmd *cli.Command) sampling.Request {
	req := sampling.Request{Start: cmd.Float64("start")}
	if cmd.IsSet("end") {
		req.End = sampling.Float64(cmd.Float64("end"))
	}
	if cmd.IsSet("step") {
		req.Step = sampling.Float64(cmd.Float64("step"))
	}
	if cmd.IsSet("count") {
		req.Count = sampling.Int(cmd.Int("count"))
	}
	return req
}

// resolvePlan probes videoPath unless --duration is given and resolves the flags against it.
func (r *runner) resolvePlan(ctx context.Context, cmd *cli.Command, videoPath string) (sampling.Plan, error) {
	req := requestFromFlags(cmd)

	var (
		duration float64
		err      error
	)
	if cmd.IsSet("duration") {
		duration = cmd.Float64("duration")
	} else {
		duration, err = r.prober.ProbeDuration(ctx, videoPath)
		if err != nil {
			return sampling.Plan{}, err
		}
	}

	plan, err := r.cfg.Resolver().Resolve(req, duration)
	if err != nil {
		return sampling.Plan{}, err
	}
	for _, d := range plan.Diagnostics {
		log.WithField("video", videoPath).Warn(d.Message)
	}
	return plan, nil
}

func (r *runner) planAction(ctx context.Context, cmd *cli.Command) error {
	videoPath := cmd.Args().First()
	if videoPath == "" {
		return cli.Exit("a video path is required", 2)
	}

	plan, err := r.resolvePlan(ctx, cmd, videoPath)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	printPlan(r, videoPath, plan)
	return nil
}

func printPlan(r *runner, videoPath string, plan sampling.Plan) {
	stamps := make([]string, len(plan.Timestamps))
	for i, ts := range plan.Timestamps {
		stamps[i] = strconv.FormatFloat(ts, 'f', -1, 64)
	}
	fmt.Fprintf(r.out, "source:     %s\n", videoPath)
	fmt.Fprintf(r.out, "duration:   %g\n", plan.Duration)
	fmt.Fprintf(r.out, "start:      %g\n", plan.Start)
	fmt.Fprintf(r.out, "end:        %g\n", plan.End)
	fmt.Fprintf(r.out, "step:       %g\n", plan.Step)
	fmt.Fprintf(r.out, "count:      %d\n", plan.Count)
	fmt.Fprintf(r.out, "timestamps: %s\n", strings.Join(stamps, " "))
	for _, d := range plan.Diagnostics {
		fmt.Fprintf(r.out, "adjusted:   %s\n", d.Message)
	}
}
