package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonwraymond/dockwatch/check"
)

// fileTimestamp is the layout of the per-cycle output file name suffix.
const fileTimestamp = "20060102_150405"

// FileWriter saves each report as an indented JSON file named
// health_check_<timestamp>.json in the output directory.
type FileWriter struct {
	dir string
}

// NewFileWriter creates a file reporter, creating the output directory if
// needed.
func NewFileWriter(dir string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create output dir: %w", err)
	}
	return &FileWriter{dir: dir}, nil
}

// Publish writes the report to a timestamped file.
func (w *FileWriter) Publish(_ context.Context, r *check.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}

	name := fmt.Sprintf("health_check_%s.json", r.Timestamp.Format(fileTimestamp))
	path := filepath.Join(w.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
