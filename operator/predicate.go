package operator

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// negate inverts a predicate builder
func negate(build func(any) Predicate) func(any) Predicate {
	return func(operand any) Predicate {
		p := build(operand)
		return func(datum any, row Row, column string) bool {
			return !p(datum, row, column)
		}
	}
}

// equalPredicate compares the trimmed string form of the datum with the operand
func equalPredicate(operand any) Predicate {
	want := stringOf(operand)
	return func(datum any, _ Row, _ string) bool {
		return strings.TrimSpace(stringOf(datum)) == want
	}
}

// containsPredicate performs a trimmed substring test
func containsPredicate(operand any) Predicate {
	want := stringOf(operand)
	return func(datum any, _ Row, _ string) bool {
		return strings.Contains(strings.TrimSpace(stringOf(datum)), want)
	}
}

// orderPredicate builds the ordering comparisons.
// The stored operand is the left-hand side: GREATER_THAN holds when
// operand < datum, LESS_THAN_OR_EQUAL when operand >= datum.
func orderPredicate(id ID) func(any) Predicate {
	return func(operand any) Predicate {
		return func(datum any, _ Row, _ string) bool {
			cmp, ok := compareOrdered(operand, datum)
			if !ok {
				return false
			}
			switch id {
			case GreaterThan:
				return cmp < 0
			case GreaterThanOrEqual:
				return cmp <= 0
			case LessThan:
				return cmp > 0
			case LessThanOrEqual:
				return cmp >= 0
			default:
				return false
			}
		}
	}
}

// inPredicate tests set membership of the datum
func inPredicate(operand any) Predicate {
	set := setOf(operand)
	return func(datum any, _ Row, _ string) bool {
		_, found := set[strings.TrimSpace(stringOf(datum))]
		return found
	}
}

// notInPredicate fails closed when the datum is a member of the operand set
func notInPredicate(operand any) Predicate {
	set := setOf(operand)
	return func(datum any, _ Row, _ string) bool {
		if _, found := set[strings.TrimSpace(stringOf(datum))]; found {
			return false
		}
		return true
	}
}

// existsPredicate checks key presence on the row and its nested attributes.
// The operand and the datum are ignored.
func existsPredicate(_ any) Predicate {
	return func(_ any, row Row, column string) bool {
		if row == nil {
			return false
		}
		if _, ok := row[column]; ok {
			return true
		}
		_, ok := attributesOf(row)[column]
		return ok
	}
}

// attributesOf returns the nested attributes map of a row, or nil
func attributesOf(row Row) map[string]any {
	switch attrs := row[AttributesKey].(type) {
	case Row:
		return attrs
	case nil:
		return nil
	default:
		m, err := cast.ToStringMapE(attrs)
		if err != nil {
			return nil
		}
		return m
	}
}

// compareOrdered compares two values as times when either side is a time,
// otherwise as numbers. Returns -1, 0, +1 and whether both sides were comparable.
func compareOrdered(left, right any) (int, bool) {
	if left == nil || right == nil {
		return 0, false
	}
	if isTime(left) || isTime(right) {
		lt, err := cast.ToTimeE(left)
		if err != nil {
			return 0, false
		}
		rt, err := cast.ToTimeE(right)
		if err != nil {
			return 0, false
		}
		return lt.Compare(rt), true
	}

	lf, err := cast.ToFloat64E(trimmed(left))
	if err != nil {
		return 0, false
	}
	rf, err := cast.ToFloat64E(trimmed(right))
	if err != nil {
		return 0, false
	}
	switch {
	case lf < rf:
		return -1, true
	case lf > rf:
		return 1, true
	default:
		return 0, true
	}
}

func isTime(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

func trimmed(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// stringOf renders a datum or operand the way the comparisons see it
func stringOf(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case []byte:
		return string(val)
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// setOf normalizes a set-typed operand into a lookup table.
// A scalar operand is treated as a one-element set.
func setOf(operand any) map[string]struct{} {
	set := make(map[string]struct{})
	switch val := operand.(type) {
	case nil:
	case []string:
		for _, s := range val {
			set[strings.TrimSpace(s)] = struct{}{}
		}
	case []any:
		for _, s := range val {
			set[strings.TrimSpace(stringOf(s))] = struct{}{}
		}
	default:
		set[strings.TrimSpace(stringOf(val))] = struct{}{}
	}
	return set
}
