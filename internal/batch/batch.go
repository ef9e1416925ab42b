// Package batch runs the editor's filters without a terminal UI (--print and --export)
// and reads exported filters back (--import).
package batch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/query"
	"github.com/boolean-maybe/filterline/store"
)

// ErrNothingToDo indicates batch mode was entered without --print or --export
var ErrNothingToDo = errors.New("batch mode needs --print or --export")

// Options selects the batch outputs
type Options struct {
	Print  bool
	Export string // msgpack output file
}

// Run evaluates descriptors against records and writes the requested outputs.
// Export runs first so a print failure still leaves the exported filters on disk.
func Run(opts Options, records *store.RecordStore, descriptors []query.Descriptor, out io.Writer) error {
	if !opts.Print && opts.Export == "" {
		return ErrNothingToDo
	}

	if opts.Export != "" {
		if err := Export(opts.Export, descriptors); err != nil {
			return err
		}
	}

	if opts.Print {
		if err := records.Apply(descriptors); err != nil {
			return fmt.Errorf("evaluate filters: %w", err)
		}
		if err := Print(out, records.Columns(), records.Matched()); err != nil {
			return fmt.Errorf("print rows: %w", err)
		}
	}
	return nil
}

// Export writes descriptors as a msgpack list
func Export(path string, descriptors []query.Descriptor) error {
	data, err := query.EncodeMsgpack(descriptors)
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	//nolint:gosec // G306: 0644 is appropriate for an exported file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("filters exported", "path", path, "num_filters", len(descriptors), "bytes", len(data))
	return nil
}

// Import reads a msgpack list written by Export
func Import(path string) ([]query.Descriptor, error) {
	//nolint:gosec // G304: the path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	descriptors, err := query.DecodeMsgpack(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return descriptors, nil
}

// Print writes a tab separated table: a header line with the columns, then one line per row.
// Missing values are empty; tabs and newlines inside values become spaces.
func Print(out io.Writer, columns []string, rows []operator.Row) error {
	if _, err := fmt.Fprintln(out, strings.Join(columns, "\t")); err != nil {
		return err
	}
	fields := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			fields[i] = cellText(row, col)
		}
		if _, err := fmt.Fprintln(out, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}

var cellEscaper = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func cellText(row operator.Row, column string) string {
	v, ok := row.Lookup(column)
	if !ok || v == nil {
		return ""
	}
	var text string
	switch val := v.(type) {
	case time.Time:
		text = val.Format(time.RFC3339)
	default:
		s, err := cast.ToStringE(val)
		if err != nil {
			s = fmt.Sprint(val)
		}
		text = s
	}
	return cellEscaper.Replace(text)
}
