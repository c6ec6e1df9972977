package domain

// Level classifies the severity of a run message.
type Level string

const (
	// LevelWarning marks a valid but noteworthy simulated condition.
	LevelWarning Level = "WARNING"
	// LevelCritical marks an internal consistency failure that was flagged
	// rather than raised. These always indicate an engine defect.
	LevelCritical Level = "CRITICAL"
)

// Message codes.
const (
	CodeNegativeEquity     = "negative_equity"
	CodeInvariantViolation = "invariant_violation"
)

// Message is a non-fatal diagnostic attached to a result set. Negative
// equity on a property sale, for example, is reported this way: the run
// continues and the shortfall stays in the data.
type Message struct {
	Path  int    `json:"path"`
	Year  int    `json:"year"`
	Level Level  `json:"level"`
	Code  string `json:"code"`
	Text  string `json:"text"`
}
