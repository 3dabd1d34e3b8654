package sampling

import "fmt"

// InvalidRangeError reports a window whose resolved end precedes its resolved start.
type InvalidRangeError struct {
	Start float64
	End   float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: end %g precedes start %g", e.End, e.Start)
}

// ProbeError reports a media duration that could not be determined.
type ProbeError struct {
	Path     string
	Duration float64
	Err      error
}

func (e *ProbeError) Error() string {
	switch {
	case e.Err != nil && e.Path != "":
		return fmt.Sprintf("probe duration of %s: %v", e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("probe duration: %v", e.Err)
	case e.Path != "":
		return fmt.Sprintf("probe duration of %s: invalid duration %g", e.Path, e.Duration)
	default:
		return fmt.Sprintf("probe duration: invalid duration %g", e.Duration)
	}
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
