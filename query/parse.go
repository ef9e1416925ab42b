package query

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
)

// ParseClauses parses a flat filter string into token sets.
// Clauses are joined with AND; there is no OR and no grouping.
//
// Example expressions:
//   - service = api
//   - latency >= 250 AND region in [eu, us]
//   - owner not exists
//   - message contains 'timed out'
//
// Returns nil for an empty string (no filtering).
func ParseClauses(text string, schema model.SchemaLookup, registry *operator.Registry) ([]model.TokenSet, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	tokens, err := tokenizeClauses(text)
	if err != nil {
		return nil, err
	}

	p := &clauseParser{tokens: tokens, schema: schema, registry: registry}
	var out []model.TokenSet
	for {
		ts, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		out = append(out, ts)

		if p.done() {
			return out, nil
		}
		if !strings.EqualFold(p.peek(), "AND") {
			return nil, fmt.Errorf("unexpected token at position %d: %s", p.pos, p.peek())
		}
		p.pos++
		if p.done() {
			return nil, fmt.Errorf("expected clause after AND")
		}
	}
}

type clauseParser struct {
	tokens   []string
	pos      int
	schema   model.SchemaLookup
	registry *operator.Registry
}

func (p *clauseParser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *clauseParser) peek() string {
	if p.done() {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *clauseParser) next() string {
	tok := p.peek()
	p.pos++
	return tok
}

func (p *clauseParser) parseClause() (model.TokenSet, error) {
	property := p.next()
	field, ok := p.schema.Field(property)
	if !ok {
		return nil, fmt.Errorf("unknown property %q", property)
	}

	op, err := p.parseOperator()
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", property, err)
	}
	if !p.registry.Allows(field.Kind, op) {
		return nil, fmt.Errorf("operator %s not allowed for %s field %q", op, field.Kind, property)
	}
	if p.registry.IsZeroArity(op) {
		return model.NewTokenSet(property, op, nil, p.registry), nil
	}

	var parts []string
	for !p.done() && !strings.EqualFold(p.peek(), "AND") {
		parts = append(parts, unquote(p.next()))
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("property %q: missing value for %s", property, op)
	}

	raw := strings.Join(parts, " ")
	value, err := CoerceValue(field.Kind, op, raw)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", property, err)
	}
	ts := model.NewTokenSet(property, op, value, p.registry)
	if !ts.IsComplete(p.registry) {
		return nil, fmt.Errorf("property %q: empty value for %s", property, op)
	}
	return ts, nil
}

// parseOperator accepts ids and labels, including the two-word labels
func (p *clauseParser) parseOperator() (operator.ID, error) {
	if p.done() {
		return "", fmt.Errorf("missing operator")
	}
	if p.pos+1 < len(p.tokens) {
		if id, ok := operator.ParseID(p.tokens[p.pos] + " " + p.tokens[p.pos+1]); ok {
			p.pos += 2
			return id, nil
		}
	}
	tok := p.next()
	id, ok := operator.ParseID(tok)
	if !ok {
		return "", fmt.Errorf("unknown operator %q", tok)
	}
	return id, nil
}

// tokenizeClauses splits on whitespace, keeps 'quoted' text and [set] literals
// whole and separates comparison symbols written without spaces.
func tokenizeClauses(text string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '\'':
			flush()
			end := indexRune(runes, i+1, '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote at position %d", i)
			}
			tokens = append(tokens, string(runes[i:end+1]))
			i = end
		case r == '[':
			flush()
			end := indexRune(runes, i+1, ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated set at position %d", i)
			}
			tokens = append(tokens, string(runes[i:end+1]))
			i = end
		case strings.ContainsRune("=!<>", r):
			flush()
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, string(runes[i:i+2]))
				i++
			} else {
				tokens = append(tokens, string(r))
			}
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens, nil
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

func unquote(tok string) string {
	if len(tok) >= 2 {
		if (tok[0] == '\'' && tok[len(tok)-1] == '\'') || (tok[0] == '[' && tok[len(tok)-1] == ']') {
			return tok[1 : len(tok)-1]
		}
	}
	return tok
}
