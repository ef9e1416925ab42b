package operator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOperator indicates an operator id that has no definition
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrUnknownKind indicates a kind that has no operator table
	ErrUnknownKind = errors.New("unknown kind")
)

// Table maps each kind to its ordered list of legal operators
type Table map[Kind][]ID

// DefaultTable returns the operator table used by the editor
func DefaultTable() Table {
	return Table{
		KindString:      {Equal, NotEqual, Contains, NotContains},
		KindNumerical:   {Equal, NotEqual, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual},
		KindBoolean:     {Equal, NotEqual},
		KindCategorical: {Equal, NotEqual, In, NotIn},
		KindDatetime:    {GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual},
		KindCustom:      {Exists, NotExists},
	}
}

// Registry is the immutable kind/operator lookup.
// Build it once at startup and pass it to the components that need it.
type Registry struct {
	operators map[ID]Operator
	byKind    map[Kind][]ID
}

// NewRegistry validates the table and builds a registry from it.
// Unknown operator ids are a configuration error.
func NewRegistry(table Table) (*Registry, error) {
	ops := make(map[ID]Operator, len(builtin))
	for _, op := range builtin {
		ops[op.ID] = op
	}

	byKind := make(map[Kind][]ID, len(table))
	for kind, ids := range table {
		if _, ok := ParseKind(string(kind)); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
		seen := make(map[ID]bool, len(ids))
		list := make([]ID, 0, len(ids))
		for _, id := range ids {
			if _, ok := ops[id]; !ok {
				return nil, fmt.Errorf("kind %s: %w: %q", kind, ErrUnknownOperator, id)
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			list = append(list, id)
		}
		byKind[kind] = list
	}

	return &Registry{operators: ops, byKind: byKind}, nil
}

// DefaultRegistry builds the registry for DefaultTable.
// Panics if the built-in table is inconsistent.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultTable())
	if err != nil {
		panic(err)
	}
	return r
}

// OperatorsFor returns the ordered operators legal for a kind
func (r *Registry) OperatorsFor(kind Kind) []ID {
	ids := r.byKind[kind]
	out := make([]ID, len(ids))
	copy(out, ids)
	return out
}

// Allows reports whether the operator is legal for the kind
func (r *Registry) Allows(kind Kind, id ID) bool {
	for _, candidate := range r.byKind[kind] {
		if candidate == id {
			return true
		}
	}
	return false
}

// Lookup returns the full operator definition
func (r *Registry) Lookup(id ID) (Operator, bool) {
	op, ok := r.operators[id]
	return op, ok
}

// Describe returns the label and arity of an operator
func (r *Registry) Describe(id ID) (Description, bool) {
	op, ok := r.operators[id]
	if !ok {
		return Description{}, false
	}
	return Description{Label: op.Label, Arity: op.Arity}, true
}

// IsZeroArity reports whether the operator takes no value.
// Unknown ids are treated as unary.
func (r *Registry) IsZeroArity(id ID) bool {
	op, ok := r.operators[id]
	return ok && op.Arity == ArityNone
}

// Predicate builds the predicate for an operator and operand
func (r *Registry) Predicate(id ID, operand any) (Predicate, error) {
	op, ok := r.operators[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, id)
	}
	return op.Predicate(operand), nil
}

// Lookup returns the value of a column, falling back to the nested attributes
func (r Row) Lookup(column string) (any, bool) {
	if v, ok := r[column]; ok {
		return v, true
	}
	v, ok := attributesOf(r)[column]
	return v, ok
}
