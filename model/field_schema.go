package model

import (
	"github.com/boolean-maybe/filterline/operator"
)

// FieldSchema describes one filterable column
type FieldSchema struct {
	Path  string
	Label string
	Kind  operator.Kind
	Hints func() []string // value suggestions; may be nil
}

// ValueHints returns the hint list, never nil
func (f FieldSchema) ValueHints() []string {
	if f.Hints == nil {
		return []string{}
	}
	hints := f.Hints()
	if hints == nil {
		return []string{}
	}
	return hints
}

// DisplayLabel returns the label, falling back to the path
func (f FieldSchema) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Path
}

// SchemaLookup is the read-only field schema provider consumed by the editor
type SchemaLookup interface {
	// Field returns the schema of a property path
	Field(path string) (FieldSchema, bool)

	// Fields returns all fields in display order
	Fields() []FieldSchema
}
