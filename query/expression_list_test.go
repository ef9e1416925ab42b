package query

import (
	"reflect"
	"testing"

	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
)

func expr(id, property string) Expression {
	reg := operator.DefaultRegistry()
	return Expression{
		ID:         id,
		Tokens:     model.NewTokenSet(property, operator.Exists, nil, reg),
		Descriptor: Descriptor{Property: property, Operator: operator.Exists},
	}
}

func ids(l *ExpressionList) []string {
	var out []string
	for _, e := range l.Items() {
		out = append(out, e.ID)
	}
	return out
}

func TestExpressionList_MutationsReturnNewList(t *testing.T) {
	base := NewExpressionList(expr("a", "x"), expr("b", "y"))

	appended := base.Append(expr("c", "z"))
	if appended == base {
		t.Fatal("Append returned the same pointer")
	}
	if base.Len() != 2 || appended.Len() != 3 {
		t.Errorf("Len base=%d appended=%d, want 2/3", base.Len(), appended.Len())
	}

	replaced := appended.Replace(1, expr("B", "y"))
	if got := ids(replaced); !reflect.DeepEqual(got, []string{"a", "B", "c"}) {
		t.Errorf("Replace ids = %v", got)
	}
	if got := ids(appended); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Replace mutated its receiver: %v", got)
	}

	removed := replaced.Remove(0)
	if got := ids(removed); !reflect.DeepEqual(got, []string{"B", "c"}) {
		t.Errorf("Remove ids = %v", got)
	}

	filtered := removed.Filter(func(e Expression) bool { return e.ID == "c" })
	if got := ids(filtered); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("Filter ids = %v", got)
	}
}

func TestExpressionList_OutOfRange(t *testing.T) {
	l := NewExpressionList(expr("a", "x"))

	if _, ok := l.At(3); ok {
		t.Error("At(3) ok on a one-item list")
	}
	if got := l.Remove(5); got == l || got.Len() != 1 {
		t.Errorf("Remove(5) = len %d, want a new list of 1", got.Len())
	}
	if got := l.Replace(-1, expr("b", "y")); ids(got)[0] != "a" {
		t.Errorf("Replace(-1) changed the list: %v", ids(got))
	}
}

func TestExpressionList_NilSafe(t *testing.T) {
	var l *ExpressionList
	if l.Len() != 0 || l.Items() != nil {
		t.Error("nil list should be empty")
	}
	if got := l.Append(expr("a", "x")); got.Len() != 1 {
		t.Errorf("Append on nil list: len %d", got.Len())
	}
}

func TestExpressionList_AtReturnsCopy(t *testing.T) {
	l := NewExpressionList(expr("a", "x"))
	e, _ := l.At(0)
	e.Tokens[model.PropertySlot].Value = "changed"

	again, _ := l.At(0)
	if again.Tokens.At(model.PropertySlot) != "x" {
		t.Errorf("list mutated through At: %v", again.Tokens)
	}
}

func TestExpressionList_Descriptors(t *testing.T) {
	l := NewExpressionList(expr("a", "x"), expr("b", "y"))
	got := l.Descriptors()
	if len(got) != 2 || got[0].Property != "x" || got[1].Property != "y" {
		t.Errorf("Descriptors() = %v", got)
	}
}

func TestNewExpressionID(t *testing.T) {
	a, b := NewExpressionID(), NewExpressionID()
	if len(a) != 8 {
		t.Errorf("len(id) = %d, want 8", len(a))
	}
	if a == b {
		t.Errorf("two ids collided: %s", a)
	}
}

func TestMsgpackCodec(t *testing.T) {
	in := []Descriptor{
		{Property: "latency", Operator: operator.GreaterThan, Operands: []Operand{IntOperand(250)}},
		{Property: "region", Operator: operator.In, Operands: []Operand{StringOperand("eu"), BoolOperand(false)}},
		{Property: "owner", Operator: operator.Exists},
	}

	data, err := EncodeMsgpack(in)
	if err != nil {
		t.Fatalf("EncodeMsgpack() error = %v", err)
	}
	out, err := DecodeMsgpack(data)
	if err != nil {
		t.Fatalf("DecodeMsgpack() error = %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("decoded = %v, want %v", out, in)
	}

	if _, err := DecodeMsgpack(nil); err == nil {
		t.Error("DecodeMsgpack(nil) expected error")
	}
}
