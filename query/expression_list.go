package query

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/boolean-maybe/filterline/model"
)

// Expression is one committed filter of the list
type Expression struct {
	ID         string // stable render key
	Tokens     model.TokenSet
	Descriptor Descriptor
}

// NewExpressionID generates a short random expression key
func NewExpressionID() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 8
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		return "expr0000"
	}
	return id
}

// ExpressionList is an immutable list of expressions.
// Every mutation returns a new list so consumers can detect change by pointer.
type ExpressionList struct {
	items []Expression
}

// NewExpressionList creates a list holding items
func NewExpressionList(items ...Expression) *ExpressionList {
	return &ExpressionList{items: cloneExpressions(items)}
}

// Len returns the number of expressions; safe on a nil list
func (l *ExpressionList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the expression at index i
func (l *ExpressionList) At(i int) (Expression, bool) {
	if i < 0 || i >= l.Len() {
		return Expression{}, false
	}
	e := l.items[i]
	e.Tokens = e.Tokens.Clone()
	return e, true
}

// Items returns a copy of all expressions
func (l *ExpressionList) Items() []Expression {
	if l == nil {
		return nil
	}
	return cloneExpressions(l.items)
}

// Append returns a new list with e added at the end
func (l *ExpressionList) Append(e Expression) *ExpressionList {
	items := append(l.Items(), e)
	return &ExpressionList{items: items}
}

// Replace returns a new list with the expression at i replaced
func (l *ExpressionList) Replace(i int, e Expression) *ExpressionList {
	items := l.Items()
	if i < 0 || i >= len(items) {
		return &ExpressionList{items: items}
	}
	items[i] = e
	return &ExpressionList{items: items}
}

// Remove returns a new list without the expression at i
func (l *ExpressionList) Remove(i int) *ExpressionList {
	items := l.Items()
	if i < 0 || i >= len(items) {
		return &ExpressionList{items: items}
	}
	return &ExpressionList{items: append(items[:i], items[i+1:]...)}
}

// Filter returns a new list holding the expressions keep accepts
func (l *ExpressionList) Filter(keep func(Expression) bool) *ExpressionList {
	var items []Expression
	for _, e := range l.Items() {
		if keep(e) {
			items = append(items, e)
		}
	}
	return &ExpressionList{items: items}
}

// Descriptors returns the backend form of every expression in order
func (l *ExpressionList) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, l.Len())
	for _, e := range l.Items() {
		out = append(out, e.Descriptor)
	}
	return out
}

func cloneExpressions(items []Expression) []Expression {
	if len(items) == 0 {
		return nil
	}
	out := make([]Expression, len(items))
	for i, e := range items {
		out[i] = e
		out[i].Tokens = e.Tokens.Clone()
	}
	return out
}
