package store

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/boolean-maybe/filterline/internal/recovery"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/query"
)

// recordsFile is the root of records.yaml
type recordsFile struct {
	Records []map[string]any `yaml:"records"`
}

// RecordStore holds the table the filters are evaluated against.
// It keeps the active filters and the matching rows; listeners fire after every
// reload or filter change.
type RecordStore struct {
	mu       sync.RWMutex
	path     string // empty for in-memory stores
	registry *operator.Registry
	schema   model.SchemaLookup
	rows     []operator.Row
	filters  []query.Descriptor
	matched  []operator.Row
	lastList *query.ExpressionList
	lastErr  error
	ls       listenerSet
}

// NewRecordStore creates an in-memory store over rows
func NewRecordStore(registry *operator.Registry, schema model.SchemaLookup, rows []operator.Row) *RecordStore {
	s := &RecordStore{
		registry: registry,
		schema:   schema,
		rows:     rows,
		matched:  rows,
		ls:       newListenerSet(),
	}
	return s
}

// LoadRecords creates a store backed by a records YAML file
func LoadRecords(path string, registry *operator.Registry, schema model.SchemaLookup) (*RecordStore, error) {
	rows, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	s := NewRecordStore(registry, schema, rows)
	s.path = path
	slog.Info("records loaded", "path", path, "num_records", len(rows))
	return s, nil
}

func readRecords(path string) ([]operator.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	var file recordsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("records %s: parsing yaml: %w", path, err)
	}
	rows := make([]operator.Row, len(file.Records))
	for i, r := range file.Records {
		rows[i] = operator.Row(r)
	}
	return rows, nil
}

// AddListener registers a callback for change notifications
func (s *RecordStore) AddListener(listener ChangeListener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ls.add(listener)
}

// RemoveListener removes a previously registered listener by ID
func (s *RecordStore) RemoveListener(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ls.remove(id)
}

func (s *RecordStore) notifyListeners() {
	s.mu.RLock()
	listeners := s.ls.snapshot()
	s.mu.RUnlock()
	for _, l := range listeners {
		l()
	}
}

// Reload re-reads the backing file and re-applies the active filters.
// In-memory stores only re-apply.
func (s *RecordStore) Reload() error {
	s.mu.Lock()
	if s.path != "" {
		rows, err := readRecords(s.path)
		if err != nil {
			s.mu.Unlock()
			slog.Error("failed to reload records", "path", s.path, "error", err)
			return err
		}
		s.rows = rows
	}
	s.applyLocked()
	s.mu.Unlock()

	slog.Info("records reloaded", "path", s.path)
	s.notifyListeners()
	return nil
}

// Apply sets the active filters and recomputes the matching rows
func (s *RecordStore) Apply(descriptors []query.Descriptor) error {
	s.mu.Lock()
	s.filters = append([]query.Descriptor(nil), descriptors...)
	s.applyLocked()
	err := s.lastErr
	s.mu.Unlock()

	s.notifyListeners()
	return err
}

// OnExpressionsChanged is a filter bar listener. Notifications carrying the
// list it already applied are ignored.
func (s *RecordStore) OnExpressionsChanged(list *query.ExpressionList) {
	s.mu.Lock()
	if list == s.lastList {
		s.mu.Unlock()
		return
	}
	s.lastList = list
	s.mu.Unlock()

	if err := s.Apply(list.Descriptors()); err != nil {
		slog.Warn("filters could not be evaluated", "error", err)
	}
}

func (s *RecordStore) applyLocked() {
	// a predicate bug fails the filters instead of the whole editor
	matched, err := recovery.GuardValue("evaluate filters", func() ([]operator.Row, error) {
		return Evaluate(s.registry, s.schema, s.rows, s.filters)
	})
	if err != nil {
		s.lastErr = err
		s.matched = nil
		return
	}
	s.lastErr = nil
	s.matched = matched
	slog.Debug("filters applied", "num_filters", len(s.filters), "num_matched", len(matched))
}

// Evaluate returns the rows matching every descriptor
func Evaluate(registry *operator.Registry, schema model.SchemaLookup, rows []operator.Row, descriptors []query.Descriptor) ([]operator.Row, error) {
	type compiled struct {
		column string
		pred   operator.Predicate
	}

	preds := make([]compiled, 0, len(descriptors))
	for _, d := range descriptors {
		operand, err := operandOf(registry, schema, d)
		if err != nil {
			return nil, err
		}
		pred, err := registry.Predicate(d.Operator, operand)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", d, err)
		}
		preds = append(preds, compiled{column: d.Property, pred: pred})
	}

	out := make([]operator.Row, 0, len(rows))
	for _, row := range rows {
		keep := true
		for _, p := range preds {
			datum, _ := row.Lookup(p.column)
			if !p.pred(datum, row, p.column) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out, nil
}

// operandOf unwraps the descriptor operands into the predicate operand.
// Set operators take every operand; datetime fields parse string operands into times.
func operandOf(registry *operator.Registry, schema model.SchemaLookup, d query.Descriptor) (any, error) {
	if registry.IsZeroArity(d.Operator) {
		return nil, nil
	}
	if len(d.Operands) == 0 {
		return nil, fmt.Errorf("filter %s: missing operand", d)
	}

	values := make([]any, len(d.Operands))
	for i, o := range d.Operands {
		v, err := o.Value()
		if err != nil {
			return nil, fmt.Errorf("filter %s: operand %d: %w", d, i, err)
		}
		values[i] = v
	}

	if d.Operator == operator.In || d.Operator == operator.NotIn {
		return values, nil
	}

	if schema != nil {
		if f, ok := schema.Field(d.Property); ok && f.Kind == operator.KindDatetime {
			t, err := cast.ToTimeE(values[0])
			if err != nil {
				return nil, fmt.Errorf("filter %s: %w", d, err)
			}
			return t, nil
		}
	}
	return values[0], nil
}

// Rows returns all records
func (s *RecordStore) Rows() []operator.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// Matched returns the records passing the active filters
func (s *RecordStore) Matched() []operator.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matched
}

// Filters returns the active filters
func (s *RecordStore) Filters() []query.Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]query.Descriptor(nil), s.filters...)
}

// Err returns the evaluation error of the active filters, if any
func (s *RecordStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Columns returns the schema paths, or the sorted union of row keys without a schema
func (s *RecordStore) Columns() []string {
	if s.schema != nil {
		fields := s.schema.Fields()
		cols := make([]string, len(fields))
		for i, f := range fields {
			cols[i] = f.Path
		}
		return cols
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var cols []string
	for _, row := range s.rows {
		for k := range row {
			if k != operator.AttributesKey && !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// DistinctValues returns the distinct non-empty string forms of a column
func (s *RecordStore) DistinctValues(column string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, row := range s.rows {
		v, ok := row.Lookup(column)
		if !ok || v == nil {
			continue
		}
		str, err := cast.ToStringE(v)
		if err != nil {
			continue
		}
		str = strings.TrimSpace(str)
		if str != "" && !seen[str] {
			seen[str] = true
			out = append(out, str)
		}
	}
	return out
}

// GetStats returns header statistics for the dataset
func (s *RecordStore) GetStats() []Stat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return []Stat{
		{Name: "Matched", Value: fmt.Sprintf("%d/%d", len(s.matched), len(s.rows)), Order: 2},
		{Name: "Filters", Value: fmt.Sprintf("%d", len(s.filters)), Order: 3},
	}
}
