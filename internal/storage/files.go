package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ChartWriter writes chart documents as indented JSON files into one directory.
type ChartWriter struct {
	dir string
}

func NewChartWriter(dir string) *ChartWriter {
	return &ChartWriter{dir: dir}
}

func (w *ChartWriter) Dir() string { return w.dir }

// WriteJSON writes v to name inside the output dir and returns the file path.
func (w *ChartWriter) WriteJSON(name string, v any) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}
	path := filepath.Join(w.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("rename %s: %w", name, err)
	}
	return path, nil
}
