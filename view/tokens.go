package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
)

// slot placeholders shown in the prompt for empty slots
var slotPlaceholders = [...]string{"field", "operator", "value"}

// tokenFormatter renders slot values with field and operator labels
type tokenFormatter struct {
	registry *operator.Registry
	schema   model.SchemaLookup
}

// slotText renders slot i of values, "" when the slot is empty
func (f tokenFormatter) slotText(values model.TokenSet, i int) string {
	v := values.At(i)
	if !model.IsValueExist(v) {
		return ""
	}

	switch i {
	case model.PropertySlot:
		path := fmt.Sprint(v)
		if field, ok := f.schema.Field(path); ok {
			return field.DisplayLabel()
		}
		return path
	case model.OperatorSlot:
		if id, ok := v.(operator.ID); ok {
			if desc, ok := f.registry.Describe(id); ok {
				return desc.Label
			}
		}
		return fmt.Sprint(v)
	default:
		return formatDatum(v)
	}
}

// chipText renders a whole expression, "_" for empty slots
func (f tokenFormatter) chipText(values model.TokenSet) string {
	parts := make([]string, 0, values.Len())
	for i := 0; i < values.Len(); i++ {
		text := f.slotText(values, i)
		if text == "" {
			text = "_"
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

// formatDatum renders an operand or a record value for display
func formatDatum(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatDatum(item)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := sortedKeys(val)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + formatDatum(val[k])
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(val)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
