package query

import (
	"errors"
	"fmt"

	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/spf13/cast"
)

// ErrIncomplete is returned when a token set cannot form an expression yet
var ErrIncomplete = errors.New("incomplete expression")

// DecodeError reports a persisted filter that cannot be turned back into tokens
type DecodeError struct {
	Property string
	Operator operator.ID
	Operand  int // operand index, -1 when the failure is not operand specific
	Reason   string
}

func (e *DecodeError) Error() string {
	if e.Operand < 0 {
		return fmt.Sprintf("decode filter %q %s: %s", e.Property, e.Operator, e.Reason)
	}
	return fmt.Sprintf("decode filter %q %s operand %d: %s", e.Property, e.Operator, e.Operand, e.Reason)
}

// Translator maps token sets to descriptors and back
type Translator struct {
	registry *operator.Registry
	schema   model.SchemaLookup
}

// NewTranslator creates a translator validating against schema
func NewTranslator(registry *operator.Registry, schema model.SchemaLookup) *Translator {
	return &Translator{registry: registry, schema: schema}
}

// ToDescriptor converts a complete token set. Zero-arity operators carry no
// operands and set values become one operand per member.
func (t *Translator) ToDescriptor(tokens model.TokenSet) (Descriptor, error) {
	if !tokens.IsComplete(t.registry) {
		return Descriptor{}, ErrIncomplete
	}
	property, _ := tokens.Property()
	op, _ := tokens.Operator()
	if _, ok := t.registry.Lookup(op); !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", operator.ErrUnknownOperator, op)
	}

	d := Descriptor{Property: property, Operator: op}
	if t.registry.IsZeroArity(op) {
		return d, nil
	}

	value, _ := tokens.Value()
	members, isSet := setMembers(value)
	if !isSet {
		members = []any{value}
	}
	for _, m := range members {
		operand, err := OperandOf(m)
		if err != nil {
			return Descriptor{}, fmt.Errorf("encode %s %s: %w", property, op, err)
		}
		d.Operands = append(d.Operands, operand)
	}
	return d, nil
}

// FromPersisted rebuilds the token set of a stored descriptor. The property must
// exist in the schema, the operator must be legal for its kind, and every operand
// must be a scalar matching the kind. Operand values keep their decoded Go type.
func (t *Translator) FromPersisted(d Descriptor) (model.TokenSet, error) {
	fail := func(operand int, format string, args ...any) (model.TokenSet, error) {
		return nil, &DecodeError{
			Property: d.Property,
			Operator: d.Operator,
			Operand:  operand,
			Reason:   fmt.Sprintf(format, args...),
		}
	}

	field, ok := t.schema.Field(d.Property)
	if !ok {
		return fail(-1, "unknown property")
	}
	if !t.registry.Allows(field.Kind, d.Operator) {
		return fail(-1, "operator not allowed for %s fields", field.Kind)
	}

	if t.registry.IsZeroArity(d.Operator) {
		return model.NewTokenSet(d.Property, d.Operator, nil, t.registry), nil
	}

	if len(d.Operands) == 0 {
		return fail(-1, "missing operand")
	}

	values := make([]any, len(d.Operands))
	for i, o := range d.Operands {
		v, reason := operandValue(field.Kind, o)
		if reason != "" {
			return fail(i, "%s", reason)
		}
		values[i] = v
	}

	if d.Operator == operator.In || d.Operator == operator.NotIn {
		return model.NewTokenSet(d.Property, d.Operator, values, t.registry), nil
	}
	if len(values) != 1 {
		return fail(1, "expected a single operand, got %d", len(values))
	}
	return model.NewTokenSet(d.Property, d.Operator, values[0], t.registry), nil
}

// operandValue unwraps an operand and checks it against the field kind.
// Returns a non-empty reason on failure.
func operandValue(kind operator.Kind, o Operand) (any, string) {
	k := o.Kind()
	if k == OperandFilter {
		return nil, "nested filter operands are not supported"
	}
	v, err := o.Value()
	if err != nil {
		return nil, err.Error()
	}
	if !model.IsValueExist(v) {
		return nil, "empty operand"
	}

	var ok bool
	switch kind {
	case operator.KindNumerical:
		ok = k == OperandInt || k == OperandFloat
	case operator.KindBoolean:
		ok = k == OperandBool
	case operator.KindString:
		ok = k == OperandString || k == OperandBytes
	case operator.KindCategorical:
		ok = k == OperandString || k == OperandInt || k == OperandBool
	case operator.KindDatetime:
		if k == OperandInt {
			ok = true
		} else if k == OperandString {
			_, err := cast.ToTimeE(v)
			ok = err == nil
		}
	default:
		ok = true
	}
	if !ok {
		return nil, fmt.Sprintf("%s operand does not fit a %s field", k, kind)
	}
	return v, ""
}

// setMembers flattens list values; the bool reports whether v was a list
func setMembers(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
