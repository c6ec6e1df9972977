package output

import (
	json "github.com/goccy/go-json"
)

// JSONFormatter serializes the full report, raw result matrices included,
// as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
