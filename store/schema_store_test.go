package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/boolean-maybe/filterline/operator"
)

const testSchema = `
name: logs
fields:
  - path: service
    label: Service
    kind: string
  - path: latency
    label: Latency (ms)
    kind: numerical
  - path: region
    kind: categorical
    hints: [eu, us]
  - path: ok
    kind: bool
  - path: ts
    kind: datetime
  - path: trace
    kind: custom
`

func TestParseSchema(t *testing.T) {
	s, err := ParseSchema([]byte(testSchema))
	if err != nil {
		t.Fatalf("ParseSchema() error = %v", err)
	}

	if s.Name() != "logs" {
		t.Errorf("Name() = %q, want logs", s.Name())
	}

	wantPaths := []string{"service", "latency", "region", "ok", "ts", "trace"}
	if got := s.Paths(); !reflect.DeepEqual(got, wantPaths) {
		t.Errorf("Paths() = %v, want %v", got, wantPaths)
	}

	tests := []struct {
		path      string
		wantKind  operator.Kind
		wantLabel string
	}{
		{"service", operator.KindString, "Service"},
		{"latency", operator.KindNumerical, "Latency (ms)"},
		{"region", operator.KindCategorical, "region"},
		{"ok", operator.KindBoolean, "ok"},
		{"ts", operator.KindDatetime, "ts"},
		{"trace", operator.KindCustom, "trace"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, ok := s.Field(tt.path)
			if !ok {
				t.Fatalf("Field(%q) not found", tt.path)
			}
			if f.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", f.Kind, tt.wantKind)
			}
			if f.DisplayLabel() != tt.wantLabel {
				t.Errorf("DisplayLabel() = %q, want %q", f.DisplayLabel(), tt.wantLabel)
			}
		})
	}

	if _, ok := s.Field("missing"); ok {
		t.Error("Field(missing) should not be found")
	}
}

func TestParseSchema_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"no fields", "name: x\nfields: []\n", ErrEmptySchema},
		{"unknown kind", "fields:\n  - path: a\n    kind: blob\n", operator.ErrUnknownKind},
		{"duplicate path", "fields:\n  - path: a\n    kind: string\n  - path: a\n    kind: string\n", nil},
		{"missing path", "fields:\n  - kind: string\n", nil},
		{"bad yaml", "fields: [", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSchemaStore_Hints(t *testing.T) {
	s, err := ParseSchema([]byte(testSchema))
	if err != nil {
		t.Fatal(err)
	}

	region, _ := s.Field("region")
	if got := region.ValueHints(); !reflect.DeepEqual(got, []string{"eu", "us"}) {
		t.Errorf("static hints = %v", got)
	}

	s.SetHintSource(func(path string) []string {
		if path == "region" {
			return []string{"us", "apac", "af"}
		}
		return nil
	}, 3)

	region, _ = s.Field("region")
	if got := region.ValueHints(); !reflect.DeepEqual(got, []string{"eu", "us", "af"}) {
		t.Errorf("merged hints = %v, want static first then sorted observed, capped", got)
	}

	ok, _ := s.Field("ok")
	if got := ok.ValueHints(); !reflect.DeepEqual(got, []string{"true", "false"}) {
		t.Errorf("boolean hints = %v", got)
	}

	latency, _ := s.Field("latency")
	if got := latency.ValueHints(); len(got) != 0 {
		t.Errorf("numerical hints = %v, want none", got)
	}
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	if err := os.WriteFile(path, []byte(testSchema), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("LoadSchema() error = %v", err)
	}
	if len(s.Fields()) != 6 {
		t.Errorf("got %d fields, want 6", len(s.Fields()))
	}

	if _, err := LoadSchema(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}
}
