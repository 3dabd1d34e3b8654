package sampling

// Request is a partially specified sampling request, in seconds.
// Count, when set, always takes precedence over Step.
type Request struct {
	Start float64  `json:"start"`
	End   *float64 `json:"end,omitempty"`
	Step  *float64 `json:"step,omitempty"`
	Count *int     `json:"count,omitempty"`
}

// Plan is a fully resolved sampling plan.
type Plan struct {
	Start         float64      `json:"start"`
	End           float64      `json:"end"`
	Step          float64      `json:"step"`
	Count         int          `json:"count"`
	Duration      float64      `json:"duration"`
	DurationBound float64      `json:"duration_bound"`
	Timestamps    []float64    `json:"timestamps"`
	Diagnostics   []Diagnostic `json:"diagnostics,omitempty"`
}

// DiagnosticKind names an adjustment made while resolving a plan.
type DiagnosticKind string

const (
	StepAdjusted DiagnosticKind = "step_adjusted"
	CountClamped DiagnosticKind = "count_clamped"
	StartClamped DiagnosticKind = "start_clamped"
	EndClamped   DiagnosticKind = "end_clamped"
)

// Diagnostic records a requested value that was replaced during resolution.
type Diagnostic struct {
	Kind      DiagnosticKind `json:"kind"`
	Requested float64        `json:"requested"`
	Applied   float64        `json:"applied"`
	Message   string         `json:"message"`
}

// Has reports whether the plan carries a diagnostic of the given kind.
func (p Plan) Has(kind DiagnosticKind) bool {
	for _, d := range p.Diagnostics {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Float64 returns a pointer to v, for optional request fields.
func Float64(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for optional request fields.
func Int(v int) *int {
	return &v
}
