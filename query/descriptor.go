package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/boolean-maybe/filterline/operator"
	"github.com/spf13/cast"
)

// Descriptor is the backend form of one filter expression
type Descriptor struct {
	Property string      `yaml:"property" msgpack:"property"`
	Operator operator.ID `yaml:"operator" msgpack:"operator"`
	Operands []Operand   `yaml:"operands,omitempty" msgpack:"operands,omitempty"`
}

// String renders the descriptor for logs
func (d Descriptor) String() string {
	parts := make([]string, len(d.Operands))
	for i, o := range d.Operands {
		parts[i] = o.Text()
	}
	return fmt.Sprintf("%s %s [%s]", d.Property, d.Operator, strings.Join(parts, " "))
}

// Operand is a tagged union: exactly one field is set.
// Filter holds a nested descriptor; the editor never emits it.
type Operand struct {
	Bool   *bool       `yaml:"bool,omitempty" msgpack:"bool,omitempty"`
	Int    *int64      `yaml:"int,omitempty" msgpack:"int,omitempty"`
	Float  *float64    `yaml:"float,omitempty" msgpack:"float,omitempty"`
	String *string     `yaml:"string,omitempty" msgpack:"string,omitempty"`
	Bytes  []byte      `yaml:"bytes,omitempty" msgpack:"bytes,omitempty"`
	Filter *Descriptor `yaml:"filter,omitempty" msgpack:"filter,omitempty"`
}

// OperandKind names the populated field of an operand
type OperandKind string

const (
	OperandNone    OperandKind = ""
	OperandBool    OperandKind = "bool"
	OperandInt     OperandKind = "int"
	OperandFloat   OperandKind = "float"
	OperandString  OperandKind = "string"
	OperandBytes   OperandKind = "bytes"
	OperandFilter  OperandKind = "filter"
	operandInvalid OperandKind = "invalid"
)

func BoolOperand(v bool) Operand { return Operand{Bool: &v} }
func IntOperand(v int64) Operand { return Operand{Int: &v} }
func FloatOperand(v float64) Operand { return Operand{Float: &v} }
func StringOperand(v string) Operand { return Operand{String: &v} }
func BytesOperand(v []byte) Operand { return Operand{Bytes: v} }
func FilterOperand(d Descriptor) Operand { return Operand{Filter: &d} }

// Kind returns which field is set. Operands with more than one field set are invalid.
func (o Operand) Kind() OperandKind {
	kind := OperandNone
	set := func(k OperandKind) {
		if kind != OperandNone {
			kind = operandInvalid
			return
		}
		kind = k
	}
	if o.Bool != nil {
		set(OperandBool)
	}
	if o.Int != nil {
		set(OperandInt)
	}
	if o.Float != nil {
		set(OperandFloat)
	}
	if o.String != nil {
		set(OperandString)
	}
	if o.Bytes != nil {
		set(OperandBytes)
	}
	if o.Filter != nil {
		set(OperandFilter)
	}
	return kind
}

// Value unwraps a scalar operand into its Go value
func (o Operand) Value() (any, error) {
	switch o.Kind() {
	case OperandBool:
		return *o.Bool, nil
	case OperandInt:
		return *o.Int, nil
	case OperandFloat:
		return *o.Float, nil
	case OperandString:
		return *o.String, nil
	case OperandBytes:
		return o.Bytes, nil
	case OperandFilter:
		return nil, fmt.Errorf("nested filter operand is not a scalar")
	case OperandNone:
		return nil, fmt.Errorf("operand has no value")
	default:
		return nil, fmt.Errorf("operand has more than one value")
	}
}

// Text renders the operand as kind:value
func (o Operand) Text() string {
	v, err := o.Value()
	if err != nil {
		return string(o.Kind())
	}
	return fmt.Sprintf("%s:%v", o.Kind(), v)
}

// OperandOf wraps a token value as an operand.
// Times are encoded as RFC3339 strings.
func OperandOf(v any) (Operand, error) {
	switch val := v.(type) {
	case bool:
		return BoolOperand(val), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return IntOperand(cast.ToInt64(val)), nil
	case float32, float64:
		return FloatOperand(cast.ToFloat64(val)), nil
	case string:
		return StringOperand(val), nil
	case []byte:
		return BytesOperand(val), nil
	case time.Time:
		return StringOperand(val.Format(time.RFC3339)), nil
	case fmt.Stringer:
		return StringOperand(val.String()), nil
	default:
		return Operand{}, fmt.Errorf("unsupported operand type %T", v)
	}
}
