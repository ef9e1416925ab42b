package model

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/boolean-maybe/filterline/operator"
)

// SlotType identifies the role of a slot in a token set
type SlotType string

const (
	SlotProperty SlotType = "property"
	SlotOperator SlotType = "op"
	SlotValue    SlotType = "value"
)

// slot positions
const (
	PropertySlot = 0
	OperatorSlot = 1
	ValueSlot    = 2
)

// Slot holds one token of a filter expression. A nil Value means undefined.
type Slot struct {
	Type  SlotType
	Value any
}

// TokenSet is the ordered [property, operator, value] model of one filter expression.
// The value slot is elided while the operator is zero-arity. TokenSets are
// treated as values: every mutation returns a new TokenSet.
type TokenSet []Slot

// ArityLookup tells the token model which operators take no value
type ArityLookup interface {
	IsZeroArity(id operator.ID) bool
}

// EmptyTokenSet returns a fresh three-slot token set with nothing filled in
func EmptyTokenSet() TokenSet {
	return TokenSet{
		{Type: SlotProperty},
		{Type: SlotOperator},
		{Type: SlotValue},
	}
}

// NewTokenSet builds a token set from its three values and normalizes its shape.
// Pass nil for undefined slots.
func NewTokenSet(property, op, value any, arity ArityLookup) TokenSet {
	ts := EmptyTokenSet()
	ts[PropertySlot].Value = property
	ts[OperatorSlot].Value = op
	ts[ValueSlot].Value = value
	return ts.normalize(arity)
}

// Clone returns an independent copy
func (ts TokenSet) Clone() TokenSet {
	if ts == nil {
		return nil
	}
	out := make(TokenSet, len(ts))
	copy(out, ts)
	return out
}

// Len returns the number of active slots
func (ts TokenSet) Len() int {
	return len(ts)
}

// At returns the value of slot i, or nil when i is out of range
func (ts TokenSet) At(i int) any {
	if i < 0 || i >= len(ts) {
		return nil
	}
	return ts[i].Value
}

// Property returns the chosen field path
func (ts TokenSet) Property() (string, bool) {
	s, ok := ts.At(PropertySlot).(string)
	return s, ok && s != ""
}

// Operator returns the chosen operator
func (ts TokenSet) Operator() (operator.ID, bool) {
	switch v := ts.At(OperatorSlot).(type) {
	case operator.ID:
		return v, v != ""
	case string:
		return operator.ID(v), v != ""
	default:
		return "", false
	}
}

// Value returns the value slot content; false when elided or undefined
func (ts TokenSet) Value() (any, bool) {
	v := ts.At(ValueSlot)
	return v, v != nil
}

// IsEmpty reports whether no slot holds a value
func (ts TokenSet) IsEmpty() bool {
	for _, s := range ts {
		if s.Value != nil {
			return false
		}
	}
	return true
}

// IsComplete reports whether the token set can become an expression:
// property and operator are set and, for unary operators, the value exists.
func (ts TokenSet) IsComplete(arity ArityLookup) bool {
	if _, ok := ts.Property(); !ok {
		return false
	}
	op, ok := ts.Operator()
	if !ok {
		return false
	}
	if arity.IsZeroArity(op) {
		return true
	}
	return IsValueExist(ts.At(ValueSlot))
}

// FirstEmpty returns the index of the first undefined slot, or -1
func (ts TokenSet) FirstEmpty() int {
	for i, s := range ts {
		if s.Value == nil {
			return i
		}
	}
	return -1
}

// LastFilled returns the index of the last slot holding a value, or -1
func (ts TokenSet) LastFilled() int {
	for i := len(ts) - 1; i >= 0; i-- {
		if ts[i].Value != nil {
			return i
		}
	}
	return -1
}

// with returns a copy with slot i set to value
func (ts TokenSet) with(i int, value any) TokenSet {
	out := ts.Clone()
	out[i].Value = value
	return out
}

// normalize restores the slot shape: three positional slots, with the value
// slot elided when the operator is zero-arity.
func (ts TokenSet) normalize(arity ArityLookup) TokenSet {
	out := EmptyTokenSet()
	for i := range ts {
		if i < len(out) {
			out[i].Value = ts[i].Value
		}
	}
	if op, ok := out.Operator(); ok && arity != nil && arity.IsZeroArity(op) {
		return out[:ValueSlot]
	}
	return out
}

// Equal compares two token sets slot by slot
func (ts TokenSet) Equal(other TokenSet) bool {
	if len(ts) != len(other) {
		return false
	}
	for i := range ts {
		if ts[i].Type != other[i].Type || !reflect.DeepEqual(ts[i].Value, other[i].Value) {
			return false
		}
	}
	return true
}

// String renders the token set as "property op value" for logs and chips
func (ts TokenSet) String() string {
	parts := make([]string, 0, len(ts))
	for _, s := range ts {
		if s.Value == nil {
			parts = append(parts, "_")
			continue
		}
		parts = append(parts, formatValue(s.Value))
	}
	return strings.Join(parts, " ")
}

// IsValueExist reports whether a value slot counts as filled.
// Zero numbers and false are real values; nil, "" and empty lists are not.
func IsValueExist(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case []string:
		return len(val) > 0
	case []any:
		return len(val) > 0
	case []byte:
		return len(val) > 0
	default:
		return true
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return "[" + strings.Join(val, ", ") + "]"
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
