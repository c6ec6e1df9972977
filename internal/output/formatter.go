package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested
// format name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic
// formatting).
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                     { return ff.ID }

// builtInFormatters stores available formatters (extended incrementally).
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{},
	CSVFormatter{},
	HTMLFormatter{},
	ArrowExporter{},
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":      "console",
	"terminal":  "console",
	"json-full": "json",
	"bands":     "csv",
	"bands-csv": "csv",
	"web":       "html",
	"feather":   "arrow",
	"ipc":       "arrow",
}

// fileExtensions maps canonical formatter names to file extensions.
var fileExtensions = map[string]string{
	"console": "txt",
	"json":    "json",
	"csv":     "csv",
	"html":    "html",
	"arrow":   "arrow",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// GetFormatterByName fetches a registered formatter, resolving aliases.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteFormatted runs a formatter and writes its output to a timestamped
// file in dir, returning the path.
func WriteFormatted(f Formatter, report *Report, dir string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	ext := fileExtensions[f.Name()]
	if ext == "" {
		ext = "out"
	}
	filename := fmt.Sprintf("networth_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// GenerateReport renders the report in the requested format into dir and
// returns the written path. Unknown formats list what is available.
func GenerateReport(report *Report, format, dir string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)",
			ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "),
			strings.Join(AvailableFormatAliases(), ", "))
	}
	return WriteFormatted(f, report, dir)
}
