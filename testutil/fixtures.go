package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/boolean-maybe/filterline/config"
)

// WriteSampleData seeds dir with the sample schema and records
func WriteSampleData(t *testing.T, dir string) {
	t.Helper()
	if _, err := config.WriteSamples(dir); err != nil {
		t.Fatalf("failed to write sample data: %v", err)
	}
}

// WriteRecords replaces the records file in dir
func WriteRecords(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, config.RecordsFilename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write records: %v", err)
	}
}
