package operator

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultRegistry_OperatorsFor(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		kind Kind
		want []ID
	}{
		{KindString, []ID{Equal, NotEqual, Contains, NotContains}},
		{KindNumerical, []ID{Equal, NotEqual, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual}},
		{KindCustom, []ID{Exists, NotExists}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got := r.OperatorsFor(tt.kind)
			if len(got) != len(tt.want) {
				t.Fatalf("OperatorsFor(%s) = %v, want %v", tt.kind, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("OperatorsFor(%s)[%d] = %s, want %s", tt.kind, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRegistry_OperatorsForReturnsCopy(t *testing.T) {
	r := DefaultRegistry()
	ops := r.OperatorsFor(KindString)
	ops[0] = Exists

	if r.OperatorsFor(KindString)[0] != Equal {
		t.Error("mutating the returned slice changed the registry")
	}
}

func TestNewRegistry_UnknownOperator(t *testing.T) {
	_, err := NewRegistry(Table{KindString: {Equal, ID("LIKE")}})
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("NewRegistry() error = %v, want ErrUnknownOperator", err)
	}
}

func TestNewRegistry_UnknownKind(t *testing.T) {
	_, err := NewRegistry(Table{Kind("GEOMETRY"): {Equal}})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("NewRegistry() error = %v, want ErrUnknownKind", err)
	}
}

func TestRegistry_Describe(t *testing.T) {
	r := DefaultRegistry()

	desc, ok := r.Describe(Exists)
	if !ok {
		t.Fatal("Describe(EXISTS) not found")
	}
	if desc.Arity != ArityNone {
		t.Errorf("EXISTS arity = %s, want none", desc.Arity)
	}
	if !r.IsZeroArity(NotExists) {
		t.Error("NOT_EXISTS should be zero-arity")
	}
	if r.IsZeroArity(Equal) {
		t.Error("EQUAL should be unary")
	}
	if _, ok := r.Describe(ID("BETWEEN")); ok {
		t.Error("Describe(BETWEEN) should not be found")
	}
}

func TestRegistry_Allows(t *testing.T) {
	r := DefaultRegistry()
	if !r.Allows(KindCategorical, In) {
		t.Error("CATEGORICAL should allow IN")
	}
	if r.Allows(KindString, GreaterThan) {
		t.Error("STRING should not allow GREATER_THAN")
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input string
		want  ID
		ok    bool
	}{
		{"EQUAL", Equal, true},
		{"equal", Equal, true},
		{">=", GreaterThanOrEqual, true},
		{" not in ", NotIn, true},
		{"like", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseID(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseID(%q) = (%s, %v), want (%s, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, ok := ParseKind("numeric"); !ok || k != KindNumerical {
		t.Errorf("ParseKind(numeric) = (%s, %v)", k, ok)
	}
	if _, ok := ParseKind("blob"); ok {
		t.Error("ParseKind(blob) should fail")
	}
}

func TestPredicate_StringContains(t *testing.T) {
	p := mustPredicate(t, Contains, "foo")

	if !p(" foo bar ", nil, "") {
		t.Error(`CONTAINS "foo" on " foo bar " = false, want true`)
	}
	if p("bar", nil, "") {
		t.Error(`CONTAINS "foo" on "bar" = true, want false`)
	}

	np := mustPredicate(t, NotContains, "foo")
	if np(" foo bar ", nil, "") {
		t.Error(`NOT_CONTAINS "foo" on " foo bar " = true, want false`)
	}
}

func TestPredicate_EqualTrimsDatum(t *testing.T) {
	tests := []struct {
		name    string
		operand any
		datum   any
		expect  bool
	}{
		{"padded string", "ready", "  ready ", true},
		{"different string", "ready", "done", false},
		{"number vs string", 42, " 42", true},
		{"bool", true, "true", true},
		{"nil datum", "x", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPredicate(t, Equal, tt.operand)
			if got := p(tt.datum, nil, ""); got != tt.expect {
				t.Errorf("EQUAL %v on %v = %v, want %v", tt.operand, tt.datum, got, tt.expect)
			}
			np := mustPredicate(t, NotEqual, tt.operand)
			if got := np(tt.datum, nil, ""); got == tt.expect {
				t.Errorf("NOT_EQUAL %v on %v = %v, want %v", tt.operand, tt.datum, got, !tt.expect)
			}
		})
	}
}

// The stored operand is compared on the left-hand side. These cases pin that
// orientation so it cannot be flipped silently.
func TestPredicate_OrderingOrientation(t *testing.T) {
	tests := []struct {
		op     ID
		datum  any
		expect bool
	}{
		{GreaterThanOrEqual, 5, false},
		{GreaterThanOrEqual, 10, true},
		{GreaterThanOrEqual, 15, true},
		{GreaterThan, 10, false},
		{GreaterThan, 11, true},
		{LessThan, 9, true},
		{LessThan, 10, false},
		{LessThanOrEqual, 10, true},
		{LessThanOrEqual, 15, false},
		{LessThanOrEqual, "  3 ", true},
		{GreaterThan, "not a number", false},
		{GreaterThan, nil, false},
	}

	for _, tt := range tests {
		p := mustPredicate(t, tt.op, 10)
		if got := p(tt.datum, nil, ""); got != tt.expect {
			t.Errorf("%s 10 on %v = %v, want %v", tt.op, tt.datum, got, tt.expect)
		}
	}
}

func TestPredicate_DatetimeOrdering(t *testing.T) {
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	p := mustPredicate(t, GreaterThan, cutoff)

	if !p(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), nil, "") {
		t.Error("later time should pass GREATER_THAN")
	}
	if p("2024-01-01T00:00:00Z", nil, "") {
		t.Error("earlier RFC3339 string should fail GREATER_THAN")
	}
}

func TestPredicate_InNotIn(t *testing.T) {
	in := mustPredicate(t, In, []string{"ready", "done"})
	notIn := mustPredicate(t, NotIn, []any{"ready", "done"})

	if !in("done", nil, "") {
		t.Error("IN should match member")
	}
	if in("review", nil, "") {
		t.Error("IN should not match non-member")
	}
	if notIn(" ready", nil, "") {
		t.Error("NOT_IN should fail closed for member")
	}
	if !notIn("review", nil, "") {
		t.Error("NOT_IN should pass for non-member")
	}
}

func TestPredicate_Exists(t *testing.T) {
	exists := mustPredicate(t, Exists, nil)
	notExists := mustPredicate(t, NotExists, nil)

	tests := []struct {
		name   string
		row    Row
		expect bool
	}{
		{"top-level key", Row{"a": 1}, true},
		{"nested attributes", Row{"attributes": map[string]any{"a": 1}}, true},
		{"nested row attributes", Row{"attributes": Row{"a": 1}}, true},
		{"missing", Row{}, false},
		{"nil row", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exists(nil, tt.row, "a"); got != tt.expect {
				t.Errorf("EXISTS a on %v = %v, want %v", tt.row, got, tt.expect)
			}
			if got := notExists(nil, tt.row, "a"); got == tt.expect {
				t.Errorf("NOT_EXISTS a on %v = %v, want %v", tt.row, got, !tt.expect)
			}
		})
	}
}

func TestRegistry_PredicateUnknown(t *testing.T) {
	r := DefaultRegistry()
	if _, err := r.Predicate(ID("LIKE"), "x"); !errors.Is(err, ErrUnknownOperator) {
		t.Errorf("Predicate(LIKE) error = %v, want ErrUnknownOperator", err)
	}
}

func TestRow_Lookup(t *testing.T) {
	row := Row{"name": "api", "attributes": map[string]any{"region": "eu"}}

	if v, ok := row.Lookup("name"); !ok || v != "api" {
		t.Errorf("Lookup(name) = (%v, %v)", v, ok)
	}
	if v, ok := row.Lookup("region"); !ok || v != "eu" {
		t.Errorf("Lookup(region) = (%v, %v)", v, ok)
	}
	if _, ok := row.Lookup("zone"); ok {
		t.Error("Lookup(zone) should not be found")
	}
}

func mustPredicate(t *testing.T, id ID, operand any) Predicate {
	t.Helper()
	p, err := DefaultRegistry().Predicate(id, operand)
	if err != nil {
		t.Fatalf("Predicate(%s) error: %v", id, err)
	}
	return p
}
