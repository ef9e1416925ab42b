package operator

import (
	"strings"
)

// ID identifies a filter operator
type ID string

// Operator ids understood by the editor and the query backend.
const (
	Equal              ID = "EQUAL"
	NotEqual           ID = "NOT_EQUAL"
	Contains           ID = "CONTAINS"
	NotContains        ID = "NOT_CONTAINS"
	GreaterThan        ID = "GREATER_THAN"
	GreaterThanOrEqual ID = "GREATER_THAN_OR_EQUAL"
	LessThan           ID = "LESS_THAN"
	LessThanOrEqual    ID = "LESS_THAN_OR_EQUAL"
	In                 ID = "IN"
	NotIn              ID = "NOT_IN"
	Exists             ID = "EXISTS"
	NotExists          ID = "NOT_EXISTS"
)

// Kind is the semantic data type of a column
type Kind string

const (
	KindString      Kind = "STRING"
	KindNumerical   Kind = "NUMERICAL"
	KindBoolean     Kind = "BOOLEAN"
	KindCategorical Kind = "CATEGORICAL"
	KindDatetime    Kind = "DATETIME"
	KindCustom      Kind = "CUSTOM"
)

// Arity tells whether an operator needs a value operand
type Arity int

const (
	ArityUnary Arity = iota // operator consumes the value slot
	ArityNone               // operator never requests a value token
)

// String returns the wire name of the arity
func (a Arity) String() string {
	if a == ArityNone {
		return "none"
	}
	return "unary"
}

// Row is a record the predicates are evaluated against.
// Nested attributes live under the "attributes" key.
type Row map[string]any

// AttributesKey is the row key holding nested attributes
const AttributesKey = "attributes"

// Predicate tests a single datum. row and column are only consulted by
// operators that inspect the record itself (EXISTS, NOT_EXISTS).
type Predicate func(datum any, row Row, column string) bool

// Description is the display metadata of an operator
type Description struct {
	Label string
	Arity Arity
}

// Operator is an immutable operator definition
type Operator struct {
	ID    ID
	Label string
	Arity Arity
	build func(operand any) Predicate
}

// Predicate builds the predicate for the given operand
func (o Operator) Predicate(operand any) Predicate {
	return o.build(operand)
}

// builtin lists every operator definition, in display order
var builtin = []Operator{
	{ID: Equal, Label: "=", Arity: ArityUnary, build: equalPredicate},
	{ID: NotEqual, Label: "!=", Arity: ArityUnary, build: negate(equalPredicate)},
	{ID: Contains, Label: "contains", Arity: ArityUnary, build: containsPredicate},
	{ID: NotContains, Label: "not contains", Arity: ArityUnary, build: negate(containsPredicate)},
	{ID: GreaterThan, Label: ">", Arity: ArityUnary, build: orderPredicate(GreaterThan)},
	{ID: GreaterThanOrEqual, Label: ">=", Arity: ArityUnary, build: orderPredicate(GreaterThanOrEqual)},
	{ID: LessThan, Label: "<", Arity: ArityUnary, build: orderPredicate(LessThan)},
	{ID: LessThanOrEqual, Label: "<=", Arity: ArityUnary, build: orderPredicate(LessThanOrEqual)},
	{ID: In, Label: "in", Arity: ArityUnary, build: inPredicate},
	{ID: NotIn, Label: "not in", Arity: ArityUnary, build: notInPredicate},
	{ID: Exists, Label: "exists", Arity: ArityNone, build: existsPredicate},
	{ID: NotExists, Label: "not exists", Arity: ArityNone, build: negate(existsPredicate)},
}

// ParseID resolves an operator by id or label (case-insensitive)
func ParseID(s string) (ID, bool) {
	s = strings.TrimSpace(s)
	for _, op := range builtin {
		if strings.EqualFold(string(op.ID), s) || strings.EqualFold(op.Label, s) {
			return op.ID, true
		}
	}
	return "", false
}

// ParseKind resolves a kind name (case-insensitive)
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindString:
		return KindString, true
	case KindNumerical, "NUMBER", "NUMERIC":
		return KindNumerical, true
	case KindBoolean, "BOOL":
		return KindBoolean, true
	case KindCategorical:
		return KindCategorical, true
	case KindDatetime, "TIME", "DATE":
		return KindDatetime, true
	case KindCustom:
		return KindCustom, true
	default:
		return "", false
	}
}
