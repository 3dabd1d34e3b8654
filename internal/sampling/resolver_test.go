package sampling

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScenarios(t *testing.T) {
	tests := []struct {
		name       string
		req        Request
		duration   float64
		wantStart  float64
		wantEnd    float64
		wantStep   float64
		wantCount  int
		wantStamps []float64
	}{
		{
			name:       "count over whole video",
			req:        Request{Start: 0, Count: Int(5)},
			duration:   120,
			wantStart:  0,
			wantEnd:    119,
			wantStep:   29.75,
			wantCount:  5,
			wantStamps: []float64{0, 29.75, 59.5, 89.25, 119},
		},
		{
			name:       "step inside window",
			req:        Request{Start: 2, End: Float64(8), Step: Float64(1)},
			duration:   10,
			wantStart:  2,
			wantEnd:    8,
			wantStep:   1,
			wantCount:  7,
			wantStamps: []float64{2, 3, 4, 5, 6, 7, 8},
		},
		{
			name:       "zero length window",
			req:        Request{Start: 3, End: Float64(3)},
			duration:   5,
			wantStart:  3,
			wantEnd:    3,
			wantStep:   0,
			wantCount:  1,
			wantStamps: []float64{3},
		},
		{
			name:       "step that does not divide the window is recomputed",
			req:        Request{Start: 0, End: Float64(10), Step: Float64(3)},
			duration:   20,
			wantStart:  0,
			wantEnd:    10,
			wantStep:   3.333,
			wantCount:  4,
			wantStamps: []float64{0, 3.333, 6.667, 10},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := Resolve(tc.req, tc.duration)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStart, plan.Start)
			assert.Equal(t, tc.wantEnd, plan.End)
			assert.InDelta(t, tc.wantStep, plan.Step, 1e-9)
			assert.Equal(t, tc.wantCount, plan.Count)
			assert.InDeltaSlice(t, tc.wantStamps, plan.Timestamps, 1e-9)
			assert.Equal(t, tc.duration, plan.Duration)
		})
	}
}

func TestResolveCountBeatsStep(t *testing.T) {
	plan, err := Resolve(Request{Start: 0, End: Float64(100), Step: Float64(1), Count: Int(3)}, 200)
	require.NoError(t, err)
	assert.Equal(t, 3, plan.Count)
	assert.Equal(t, 50.0, plan.Step)
	assert.Equal(t, []float64{0, 50, 100}, plan.Timestamps)
	assert.False(t, plan.Has(StepAdjusted))
}

func TestResolveCountIgnoresInvalidStep(t *testing.T) {
	plan, err := Resolve(Request{Start: 0, Step: Float64(-4), Count: Int(10)}, 50)
	require.NoError(t, err)
	assert.Equal(t, 10, plan.Count)
	assert.Empty(t, plan.Diagnostics)
}

func TestResolveCountClamped(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "zero", count: 0, want: 2},
		{name: "one", count: 1, want: 2},
		{name: "negative", count: -7, want: 2},
		{name: "above max", count: 5000, want: MaxSamples},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := Resolve(Request{Count: Int(tc.count)}, 3600)
			require.NoError(t, err)
			assert.Equal(t, tc.want, plan.Count)
			assert.Len(t, plan.Timestamps, tc.want)
			assert.True(t, plan.Has(CountClamped))
		})
	}
}

func TestResolveStepOnlyCapsAtMaxSamples(t *testing.T) {
	plan, err := Resolve(Request{Start: 0, End: Float64(2000), Step: Float64(0.5)}, 3000)
	require.NoError(t, err)
	assert.Equal(t, MaxSamples, plan.Count)
	assert.Equal(t, 2000.0, plan.Timestamps[len(plan.Timestamps)-1])
	assert.False(t, plan.Has(StepAdjusted))
}

func TestResolveStepAdjusted(t *testing.T) {
	tests := []struct {
		name        string
		step        float64
		wantApplied float64
		wantCount   int
	}{
		{name: "larger than window", step: 50, wantApplied: 6, wantCount: 2},
		{name: "negative", step: -1, wantApplied: DefaultMinStep, wantCount: MaxSamples},
		{name: "zero", step: 0, wantApplied: DefaultMinStep, wantCount: MaxSamples},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := Resolve(Request{Start: 2, End: Float64(8), Step: Float64(tc.step)}, 10)
			require.NoError(t, err)
			require.Len(t, plan.Diagnostics, 1)
			d := plan.Diagnostics[0]
			assert.Equal(t, StepAdjusted, d.Kind)
			assert.Equal(t, tc.step, d.Requested)
			assert.InDelta(t, tc.wantApplied, d.Applied, 1e-12)
			assert.NotEmpty(t, d.Message)
			assert.Equal(t, tc.wantCount, plan.Count)
		})
	}
}

func TestResolveDefaultStep(t *testing.T) {
	plan, err := Resolve(Request{Start: 1, End: Float64(4)}, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, plan.Timestamps)
	assert.Empty(t, plan.Diagnostics)

	// a short window shrinks the default step without reporting it
	plan, err = Resolve(Request{Start: 1, End: Float64(1.5)}, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1.5}, plan.Timestamps)
	assert.False(t, plan.Has(StepAdjusted))
}

func TestResolveClampsBoundaries(t *testing.T) {
	plan, err := Resolve(Request{Start: -5, End: Float64(500), Count: Int(2)}, 60)
	require.NoError(t, err)
	assert.Equal(t, 0.0, plan.Start)
	assert.Equal(t, 59.0, plan.End)
	assert.Equal(t, 59.0, plan.DurationBound)
	assert.True(t, plan.Has(StartClamped))
	assert.True(t, plan.Has(EndClamped))

	plan, err = Resolve(Request{Start: 90}, 60)
	require.NoError(t, err)
	assert.Equal(t, []float64{59}, plan.Timestamps)
}

func TestResolveShortVideo(t *testing.T) {
	plan, err := Resolve(Request{Count: Int(4)}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, plan.DurationBound)
	assert.Equal(t, []float64{0}, plan.Timestamps)
}

func TestResolveInvalidRange(t *testing.T) {
	_, err := Resolve(Request{Start: 5, End: Float64(3)}, 10)
	require.Error(t, err)

	var rangeErr *InvalidRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 5.0, rangeErr.Start)
	assert.Equal(t, 3.0, rangeErr.End)

	_, err = Resolve(Request{Start: 8, End: Float64(-2)}, 10)
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 0.0, rangeErr.End)
}

func TestResolveProbeError(t *testing.T) {
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Resolve(Request{}, d)
		var probeErr *ProbeError
		require.True(t, errors.As(err, &probeErr), "duration %v", d)
	}
}

func TestResolveRejectsDurationBeyondTickRange(t *testing.T) {
	for _, d := range []float64{1e13, 1e17, math.MaxFloat64} {
		_, err := Resolve(Request{Count: Int(MaxSamples)}, d)
		var probeErr *ProbeError
		require.True(t, errors.As(err, &probeErr), "duration %v", d)
		assert.Contains(t, probeErr.Error(), "exceeds the supported maximum")
	}
}

func TestResolveLargeDurationKeepsInvariants(t *testing.T) {
	plan, err := Resolve(Request{Count: Int(MaxSamples)}, 1e12)
	require.NoError(t, err)
	require.Len(t, plan.Timestamps, MaxSamples)
	assert.Equal(t, 0.0, plan.Timestamps[0])
	assert.Equal(t, plan.End, plan.Timestamps[MaxSamples-1])
	for i := 1; i < len(plan.Timestamps); i++ {
		if plan.Timestamps[i] <= plan.Timestamps[i-1] {
			t.Fatalf("timestamps not increasing at %d: %v <= %v", i, plan.Timestamps[i], plan.Timestamps[i-1])
		}
	}
}

func TestResolveNarrowWindowKeepsTimestampsDistinct(t *testing.T) {
	plan, err := Resolve(Request{Start: 1, End: Float64(1.003), Count: Int(50)}, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, plan.Count)
	assert.Equal(t, []float64{1, 1.001, 1.002, 1.003}, plan.Timestamps)
	assert.True(t, plan.Has(CountClamped))
}

func TestResolverCustomSettings(t *testing.T) {
	r := NewResolver()
	r.Margin = 0.001
	r.Precision = 2

	plan, err := r.Resolve(Request{Count: Int(3)}, 10)
	require.NoError(t, err)
	assert.Equal(t, 9.99, plan.End)
	assert.Equal(t, []float64{0, 5, 9.99}, plan.Timestamps)
}

func TestResolveInvariants(t *testing.T) {
	durations := []float64{1.5, 7, 61.25, 3600}
	starts := []float64{-3, 0, 0.4, 2, 30, 4000}
	ends := []*float64{nil, Float64(0), Float64(1), Float64(5.5), Float64(59.999), Float64(10000)}
	steps := []*float64{nil, Float64(-1), Float64(0.01), Float64(0.7), Float64(13), Float64(1e6)}
	counts := []*int{nil, Int(1), Int(2), Int(17), Int(1000), Int(99999)}

	for _, d := range durations {
		for _, s := range starts {
			for _, e := range ends {
				for _, st := range steps {
					for _, c := range counts {
						req := Request{Start: s, End: e, Step: st, Count: c}
						plan, err := Resolve(req, d)
						if err != nil {
							var rangeErr *InvalidRangeError
							require.True(t, errors.As(err, &rangeErr), "%+v: %v", req, err)
							require.Less(t, rangeErr.End, rangeErr.Start)
							continue
						}
						checkInvariants(t, req, plan)
					}
				}
			}
		}
	}
}

func checkInvariants(t *testing.T, req Request, plan Plan) {
	t.Helper()

	require.GreaterOrEqual(t, plan.Start, 0.0)
	require.LessOrEqual(t, plan.Start, plan.End)
	require.LessOrEqual(t, plan.End, plan.DurationBound)
	require.Len(t, plan.Timestamps, plan.Count)
	require.Equal(t, plan.Start, plan.Timestamps[0])
	require.Equal(t, plan.End, plan.Timestamps[plan.Count-1])
	require.LessOrEqual(t, plan.Count, MaxSamples)

	if plan.End > plan.Start {
		require.GreaterOrEqual(t, plan.Count, 2)
		tolerance := float64(plan.Count-1) * 0.0005
		require.InDelta(t, plan.End-plan.Start, plan.Step*float64(plan.Count-1), tolerance+1e-9)
	} else {
		require.Equal(t, 1, plan.Count)
	}
	for i := 1; i < len(plan.Timestamps); i++ {
		if plan.Timestamps[i] <= plan.Timestamps[i-1] {
			t.Fatalf("%+v: timestamps not increasing at %d: %v <= %v", req, i, plan.Timestamps[i], plan.Timestamps[i-1])
		}
	}
}

func TestResolveConcurrent(t *testing.T) {
	r := NewResolver()
	want, err := r.Resolve(Request{Start: 1, Step: Float64(0.25)}, 42)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Resolve(Request{Start: 1, Step: Float64(0.25)}, 42)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
