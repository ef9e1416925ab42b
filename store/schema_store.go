package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
)

// ErrEmptySchema indicates a schema file that declares no fields
var ErrEmptySchema = errors.New("schema declares no fields")

// FieldDef is the YAML form of one field
type FieldDef struct {
	Path  string   `yaml:"path"`
	Label string   `yaml:"label,omitempty"`
	Kind  string   `yaml:"kind"`
	Hints []string `yaml:"hints,omitempty"`
}

// schemaFile is the root of schema.yaml
type schemaFile struct {
	Name   string     `yaml:"name,omitempty"`
	Fields []FieldDef `yaml:"fields"`
}

// HintSource returns observed values of a column, used to extend static hints
type HintSource func(path string) []string

// SchemaStore is the field schema provider. It implements model.SchemaLookup.
type SchemaStore struct {
	mu         sync.RWMutex
	name       string
	order      []string
	defs       map[string]FieldDef
	hintSource HintSource
	maxHints   int
}

// LoadSchema reads a schema YAML file
func LoadSchema(path string) (*SchemaStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	s, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	slog.Info("schema loaded", "path", path, "name", s.Name(), "num_fields", len(s.order))
	return s, nil
}

// ParseSchema builds a schema store from YAML. Unknown kinds and duplicate paths are errors.
func ParseSchema(data []byte) (*SchemaStore, error) {
	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return NewSchemaStore(file.Name, file.Fields)
}

// NewSchemaStore builds a schema store from field definitions
func NewSchemaStore(name string, defs []FieldDef) (*SchemaStore, error) {
	if len(defs) == 0 {
		return nil, ErrEmptySchema
	}

	s := &SchemaStore{
		name:     name,
		defs:     make(map[string]FieldDef, len(defs)),
		maxHints: 20,
	}
	for i, def := range defs {
		def.Path = strings.TrimSpace(def.Path)
		if def.Path == "" {
			return nil, fmt.Errorf("field %d: missing path", i)
		}
		if _, dup := s.defs[def.Path]; dup {
			return nil, fmt.Errorf("field %q: duplicate path", def.Path)
		}
		kind, ok := operator.ParseKind(def.Kind)
		if !ok {
			return nil, fmt.Errorf("field %q: %w: %q", def.Path, operator.ErrUnknownKind, def.Kind)
		}
		def.Kind = string(kind)
		s.defs[def.Path] = def
		s.order = append(s.order, def.Path)
	}
	return s, nil
}

// Name returns the schema name; may be empty
func (s *SchemaStore) Name() string {
	return s.name
}

// SetHintSource extends categorical and string hints with observed values.
// limit caps the number of hints per field; zero keeps the current cap.
func (s *SchemaStore) SetHintSource(source HintSource, limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hintSource = source
	if limit > 0 {
		s.maxHints = limit
	}
}

// Field returns the schema of a property path
func (s *SchemaStore) Field(path string) (model.FieldSchema, bool) {
	s.mu.RLock()
	def, ok := s.defs[path]
	s.mu.RUnlock()
	if !ok {
		return model.FieldSchema{}, false
	}
	return s.fieldOf(def), true
}

// Fields returns all fields in declaration order
func (s *SchemaStore) Fields() []model.FieldSchema {
	s.mu.RLock()
	defs := make([]FieldDef, len(s.order))
	for i, path := range s.order {
		defs[i] = s.defs[path]
	}
	s.mu.RUnlock()

	out := make([]model.FieldSchema, len(defs))
	for i, def := range defs {
		out[i] = s.fieldOf(def)
	}
	return out
}

// Paths returns the field paths in declaration order
func (s *SchemaStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

func (s *SchemaStore) fieldOf(def FieldDef) model.FieldSchema {
	kind := operator.Kind(def.Kind)
	f := model.FieldSchema{Path: def.Path, Label: def.Label, Kind: kind}
	if kind == operator.KindCategorical || kind == operator.KindString || kind == operator.KindBoolean {
		static := def.Hints
		path := def.Path
		f.Hints = func() []string { return s.hintsFor(kind, path, static) }
	}
	return f
}

// hintsFor merges static hints with observed values, static first, without duplicates
func (s *SchemaStore) hintsFor(kind operator.Kind, path string, static []string) []string {
	if kind == operator.KindBoolean && len(static) == 0 {
		return []string{"true", "false"}
	}

	s.mu.RLock()
	source, limit := s.hintSource, s.maxHints
	s.mu.RUnlock()

	seen := make(map[string]bool, len(static))
	out := make([]string, 0, len(static))
	for _, h := range static {
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	if source == nil {
		return out
	}

	var observed []string
	for _, v := range source(path) {
		if !seen[v] {
			seen[v] = true
			observed = append(observed, v)
		}
	}
	sort.Strings(observed)
	out = append(out, observed...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
