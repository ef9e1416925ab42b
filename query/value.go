package query

import (
	"fmt"
	"strings"

	"github.com/boolean-maybe/filterline/operator"
	"github.com/spf13/cast"
)

// CoerceValue parses typed text entered into the value slot.
// Set operators split on commas. Empty input yields nil.
func CoerceValue(kind operator.Kind, op operator.ID, text string) (any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if op == operator.In || op == operator.NotIn {
		var members []any
		for _, part := range strings.Split(text, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := coerceScalar(kind, part)
			if err != nil {
				return nil, err
			}
			members = append(members, v)
		}
		if len(members) == 0 {
			return nil, nil
		}
		return members, nil
	}

	return coerceScalar(kind, text)
}

func coerceScalar(kind operator.Kind, text string) (any, error) {
	switch kind {
	case operator.KindNumerical:
		if i, err := cast.ToInt64E(text); err == nil {
			return i, nil
		}
		f, err := cast.ToFloat64E(text)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", text)
		}
		return f, nil
	case operator.KindBoolean:
		b, err := cast.ToBoolE(text)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", text)
		}
		return b, nil
	case operator.KindDatetime:
		tm, err := cast.ToTimeE(text)
		if err != nil {
			return nil, fmt.Errorf("%q is not a date or time", text)
		}
		return tm, nil
	default:
		return text, nil
	}
}
