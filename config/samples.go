package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

//go:embed sample_schema.yaml
var sampleSchema string

//go:embed sample_records.yaml
var sampleRecords string

//go:embed help.md
var helpMarkdown string

// HelpMarkdown returns the embedded help page
func HelpMarkdown() string {
	return helpMarkdown
}

// SampleSchema returns the embedded sample field schema
func SampleSchema() []byte {
	return []byte(sampleSchema)
}

// SampleRecords returns the embedded sample records
func SampleRecords() []byte {
	return []byte(sampleRecords)
}

// WriteSamples seeds dir with the sample schema and records.
// Existing files are left alone; every write is attempted and failures are joined.
func WriteSamples(dir string) ([]string, error) {
	//nolint:gosec // G301: 0755 is appropriate for a data directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{SchemaFilename, sampleSchema},
		{RecordsFilename, sampleRecords},
	}

	var written []string
	var errs []error
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil {
			slog.Debug("sample skipped, file exists", "path", path)
			continue
		}
		//nolint:gosec // G306: 0644 is appropriate for user data
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", path, err))
			continue
		}
		slog.Info("wrote sample file", "path", path)
		written = append(written, path)
	}

	if len(errs) > 0 {
		return written, errors.Join(errs...)
	}
	return written, nil
}
