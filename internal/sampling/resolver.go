package sampling

import (
	"fmt"
	"math"
)

const (
	MaxSamples       = 1000
	DefaultMargin    = 1.0
	DefaultMinStep   = 0.001
	DefaultStep      = 1.0
	DefaultPrecision = 3
)

// Resolver turns requests into plans. The zero value is not usable; use NewResolver.
// A Resolver holds no mutable state and is safe for concurrent use.
type Resolver struct {
	// Margin is subtracted from the probed duration so no sample lands at or past end of stream.
	Margin float64
	// MinStep is the smallest step accepted without adjustment.
	MinStep float64
	// DefaultStep applies when a request carries neither step nor count.
	DefaultStep float64
	// Precision is the number of decimals every resolved value is rounded to.
	Precision int
	// MaxSamples bounds the number of timestamps in a plan.
	MaxSamples int
}

func NewResolver() *Resolver {
	return &Resolver{
		Margin:      DefaultMargin,
		MinStep:     DefaultMinStep,
		DefaultStep: DefaultStep,
		Precision:   DefaultPrecision,
		MaxSamples:  MaxSamples,
	}
}

// Resolve resolves req against duration with the default settings.
func Resolve(req Request, duration float64) (Plan, error) {
	return NewResolver().Resolve(req, duration)
}

// Resolve clamps req into [0, duration-Margin] and lays out evenly spaced timestamps.
//
// Values are handled internally as integer ticks of 10^-Precision seconds so the last
// timestamp lands exactly on the end of the window and rounding can never produce two
// equal timestamps.
func (r *Resolver) Resolve(req Request, duration float64) (Plan, error) {
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return Plan{}, &ProbeError{Duration: duration}
	}

	scale := math.Pow10(r.Precision)
	fromTicks := func(t int64) float64 { return float64(t) / scale }

	// Interpolation multiplies the window's ticks by up to 2*MaxSamples.
	maxTicks := math.MaxInt64 / (2 * int64(max(r.MaxSamples, 1)))
	if duration*scale > float64(maxTicks) {
		return Plan{}, &ProbeError{
			Duration: duration,
			Err:      fmt.Errorf("duration %g exceeds the supported maximum of %g", duration, fromTicks(maxTicks)),
		}
	}

	var diags []Diagnostic

	bound := math.Max(0, duration-r.Margin)
	boundT := int64(math.Floor(bound*scale + 1e-9))
	bound = fromTicks(boundT)

	start := clamp(req.Start, 0, bound)
	if start != req.Start {
		diags = append(diags, Diagnostic{
			Kind:      StartClamped,
			Requested: req.Start,
			Applied:   start,
			Message:   fmt.Sprintf("start %g outside [0, %g], using %g", req.Start, bound, start),
		})
	}
	startT := min(int64(math.Round(start*scale)), boundT)

	endT := boundT
	if req.End != nil {
		end := clamp(*req.End, 0, bound)
		if end != *req.End {
			diags = append(diags, Diagnostic{
				Kind:      EndClamped,
				Requested: *req.End,
				Applied:   end,
				Message:   fmt.Sprintf("end %g outside [0, %g], using %g", *req.End, bound, end),
			})
		}
		endT = min(int64(math.Round(end*scale)), boundT)
	}

	if endT < startT {
		return Plan{}, &InvalidRangeError{Start: fromTicks(startT), End: fromTicks(endT)}
	}

	spanT := endT - startT
	read := fromTicks(spanT)

	var count int
	switch {
	case spanT == 0:
		count = 1
	case req.Count != nil:
		count = clampInt(*req.Count, 2, r.MaxSamples)
	default:
		step := r.DefaultStep
		if req.Step != nil {
			step = *req.Step
		}
		lo := math.Min(r.MinStep, read)
		applied := step
		if !(step >= lo) {
			applied = lo
		} else if step > read {
			applied = read
		}
		if req.Step != nil && applied != step {
			diags = append(diags, Diagnostic{
				Kind:      StepAdjusted,
				Requested: step,
				Applied:   applied,
				Message:   fmt.Sprintf("step %g outside [%g, %g], using %g", step, lo, read, applied),
			})
		}
		n := math.Floor(read/applied+1e-9) + 1
		if n > float64(r.MaxSamples) {
			n = float64(r.MaxSamples)
		}
		count = int(n)
	}

	// A window narrower than count-1 ticks cannot hold distinct rounded timestamps.
	if count > 1 && int64(count-1) > spanT {
		count = int(spanT) + 1
	}
	if req.Count != nil && spanT > 0 && count != *req.Count {
		diags = append(diags, Diagnostic{
			Kind:      CountClamped,
			Requested: float64(*req.Count),
			Applied:   float64(count),
			Message:   fmt.Sprintf("count %d outside [2, %d], using %d", *req.Count, min(r.MaxSamples, int(spanT)+1), count),
		})
	}

	timestamps := make([]float64, count)
	stepT := spanT
	if count > 1 {
		intervals := int64(count - 1)
		stepT = int64(math.Round(float64(spanT) / float64(intervals)))
		for i := range timestamps {
			// rounded linear interpolation: start + span*i/intervals
			offset := (2*spanT*int64(i) + intervals) / (2 * intervals)
			timestamps[i] = fromTicks(startT + offset)
		}
	} else {
		timestamps[0] = fromTicks(startT)
	}

	return Plan{
		Start:         fromTicks(startT),
		End:           fromTicks(endT),
		Step:          fromTicks(stepT),
		Count:         count,
		Duration:      duration,
		DurationBound: bound,
		Timestamps:    timestamps,
		Diagnostics:   diags,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
