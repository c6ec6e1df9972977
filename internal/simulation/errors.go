package simulation

import "fmt"

// InvalidConfigurationError reports a malformed or out-of-range scenario
// input. It is raised before any simulation work begins; no partial
// computation is performed.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// invalidConfigf builds an InvalidConfigurationError for a field.
func invalidConfigf(field, format string, args ...any) error {
	return &InvalidConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DistributionError reports an unsupported or degenerate draw distribution,
// such as a negative volatility or an unknown family. Raised before any
// path runs.
type DistributionError struct {
	Quantity string
	Reason   string
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("distribution error: %s: %s", e.Quantity, e.Reason)
}

// InvariantViolationError reports a failed net-worth reconciliation for a
// path and year. It indicates an engine defect, never bad user input, and is
// raised only when the engine runs with StrictInvariants; otherwise the
// violation is logged and flagged as a critical message.
type InvariantViolationError struct {
	Path     int
	Year     int
	Expected float64
	Actual   float64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("net worth invariant violated at path %d year %d: recorded %.6f, reconstructed %.6f",
		e.Path, e.Year, e.Actual, e.Expected)
}
