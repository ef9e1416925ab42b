package batch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/query"
	"github.com/boolean-maybe/filterline/store"
)

func testRecords() *store.RecordStore {
	rows := []operator.Row{
		{"service": "api", "latency": 87, "ts": time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"service": "billing", "latency": 1320, "note": "a\tb"},
		{"service": "search", "latency": 264},
	}
	return store.NewRecordStore(operator.DefaultRegistry(), nil, rows)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	rows := testRecords().Rows()

	if err := Print(&buf, []string{"service", "latency", "ts", "note"}, rows); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"service\tlatency\tts\tnote",
		"api\t87\t2024-03-01T10:00:00Z\t",
		"billing\t1320\t\ta b",
		"search\t264\t\t",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRun_PrintAppliesFilters(t *testing.T) {
	records := testRecords()
	filters := []query.Descriptor{{
		Property: "latency",
		Operator: operator.GreaterThan,
		Operands: []query.Operand{query.IntOperand(250)},
	}}

	var buf bytes.Buffer
	if err := Run(Options{Print: true}, records, filters, &buf); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "api") || !strings.Contains(out, "billing") || !strings.Contains(out, "search") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRun_ExportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.msgpack")
	filters := []query.Descriptor{
		{Property: "service", Operator: operator.In, Operands: []query.Operand{query.StringOperand("api"), query.StringOperand("search")}},
		{Property: "trace", Operator: operator.Exists},
	}

	if err := Run(Options{Export: path}, testRecords(), filters, &bytes.Buffer{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := query.DecodeMsgpack(data)
	if err != nil {
		t.Fatalf("DecodeMsgpack() error = %v", err)
	}
	if len(got) != 2 || got[0].String() != filters[0].String() || got[1].String() != filters[1].String() {
		t.Errorf("decoded %v, want %v", got, filters)
	}
}

func TestRun_NothingToDo(t *testing.T) {
	if err := Run(Options{}, testRecords(), nil, &bytes.Buffer{}); !errors.Is(err, ErrNothingToDo) {
		t.Errorf("Run() error = %v, want ErrNothingToDo", err)
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filters.msgpack")
	filters := []query.Descriptor{
		{Property: "latency", Operator: operator.GreaterThan, Operands: []query.Operand{query.IntOperand(250)}},
	}
	if err := Export(path, filters); err != nil {
		t.Fatal(err)
	}

	got, err := Import(path)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(got) != 1 || got[0].String() != filters[0].String() {
		t.Errorf("imported %v, want %v", got, filters)
	}

	if _, err := Import(filepath.Join(dir, "missing.msgpack")); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.msgpack")
	if err := os.WriteFile(garbage, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Import(garbage); err == nil {
		t.Error("expected error for undecodable file")
	}
}
