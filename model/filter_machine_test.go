package model

import (
	"math/rand"
	"testing"

	"github.com/boolean-maybe/filterline/operator"
)

var testRegistry = operator.DefaultRegistry()

func newTestMachine(origins TokenSet) *FilterMachine {
	return NewFilterMachine(origins, testRegistry)
}

func TestFilterMachine_InitialPreview(t *testing.T) {
	m := newTestMachine(nil)
	ctx := m.Context()

	if ctx.State != StatePreview {
		t.Errorf("State = %s, want preview", ctx.State)
	}
	if ctx.Focused {
		t.Error("Focused = true, want false")
	}
	if ctx.FocusTarget != 0 {
		t.Errorf("FocusTarget = %d, want 0", ctx.FocusTarget)
	}
	if len(ctx.Values) != 3 {
		t.Errorf("len(Values) = %d, want 3", len(ctx.Values))
	}
}

func TestFilterMachine_Focus(t *testing.T) {
	m := newTestMachine(nil)

	ctx := m.Send(Focus{Index: KeepTarget})
	if ctx.State != StateEditing || !ctx.Focused {
		t.Errorf("after FOCUS: state=%s focused=%v, want editing/true", ctx.State, ctx.Focused)
	}
	if !ctx.PropertyEditing() {
		t.Error("PropertyEditing() = false, want true with target 0")
	}

	ctx = m.Send(Focus{Index: 2})
	if ctx.FocusTarget != 2 {
		t.Errorf("FocusTarget = %d, want 2", ctx.FocusTarget)
	}
	if ctx.PropertyEditing() {
		t.Error("PropertyEditing() = true, want false with target 2")
	}
}

func TestFilterMachine_FocusTargetClamped(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		expect int
	}{
		{"in range", 1, 1},
		{"negative", -5, 0},
		{"past end", 9, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(nil)
			ctx := m.Send(FocusTarget{Index: tt.index})
			if ctx.FocusTarget != tt.expect {
				t.Errorf("FocusTarget = %d, want %d", ctx.FocusTarget, tt.expect)
			}
			if !ctx.Focused {
				t.Error("Focused = false, want true")
			}
		})
	}
}

func TestFilterMachine_FocusOnLastEdit(t *testing.T) {
	tests := []struct {
		name    string
		origins TokenSet
		expect  int
	}{
		{"blank", nil, 0},
		{"property only", NewTokenSet("service", nil, nil, testRegistry), 1},
		{"missing value", NewTokenSet("service", operator.Equal, nil, testRegistry), 2},
		{"all filled", NewTokenSet("service", operator.Equal, "api", testRegistry), 2},
		{"zero arity", NewTokenSet("service", operator.Exists, nil, testRegistry), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(tt.origins)
			ctx := m.Send(FocusOnLastEdit{})
			if ctx.State != StateEditing || !ctx.Focused {
				t.Errorf("state=%s focused=%v, want editing/true", ctx.State, ctx.Focused)
			}
			if ctx.FocusTarget != tt.expect {
				t.Errorf("FocusTarget = %d, want %d", ctx.FocusTarget, tt.expect)
			}
		})
	}
}

func TestFilterMachine_FocusOnLastEditIgnoredWhileEditing(t *testing.T) {
	m := newTestMachine(NewTokenSet("service", nil, nil, testRegistry))
	m.Send(Focus{Index: 0})

	ctx := m.Send(FocusOnLastEdit{})
	if ctx.FocusTarget != 0 {
		t.Errorf("FocusTarget = %d, want 0 (FOCUSONLASTEDIT only applies from preview)", ctx.FocusTarget)
	}
}

func TestFilterMachine_ConfirmSequence(t *testing.T) {
	m := newTestMachine(nil)
	m.Send(Focus{Index: 0})

	ctx := m.Send(Confirm{Index: 0, Value: "latency"})
	if ctx.FocusTarget != 1 {
		t.Errorf("after property: FocusTarget = %d, want 1", ctx.FocusTarget)
	}

	ctx = m.Send(Confirm{Index: 1, Value: operator.GreaterThan})
	if ctx.FocusTarget != 2 {
		t.Errorf("after operator: FocusTarget = %d, want 2", ctx.FocusTarget)
	}
	if m.IsComplete() {
		t.Error("IsComplete() = true before value")
	}

	ctx = m.Send(Confirm{Index: 2, Value: 250})
	if ctx.FocusTarget != 2 {
		t.Errorf("after value: FocusTarget = %d, want 2 (clamped)", ctx.FocusTarget)
	}
	if !m.IsComplete() {
		t.Error("IsComplete() = false after value")
	}
	if got := ctx.Values.String(); got != "latency GREATER_THAN 250" {
		t.Errorf("Values = %q", got)
	}
}

func TestFilterMachine_ConfirmPropertyResetsOtherSlots(t *testing.T) {
	origins := []TokenSet{
		NewTokenSet("service", operator.Equal, "api", testRegistry),
		NewTokenSet("service", operator.Exists, nil, testRegistry),
		NewTokenSet("service", operator.Equal, nil, testRegistry),
		nil,
	}

	for _, o := range origins {
		m := newTestMachine(o)
		m.Send(Focus{Index: 0})
		ctx := m.Send(Confirm{Index: 0, Value: "new/prop"})

		if len(ctx.Values) != 3 {
			t.Fatalf("from %v: len(Values) = %d, want 3", o, len(ctx.Values))
		}
		if ctx.Values.At(0) != "new/prop" {
			t.Errorf("from %v: property = %v", o, ctx.Values.At(0))
		}
		if ctx.Values.At(1) != nil || ctx.Values.At(2) != nil {
			t.Errorf("from %v: operator/value = %v/%v, want undefined", o, ctx.Values.At(1), ctx.Values.At(2))
		}
	}
}

func TestFilterMachine_ZeroArityElidesValueSlot(t *testing.T) {
	m := newTestMachine(NewTokenSet("region", operator.Equal, "eu", testRegistry))
	m.Send(Focus{Index: 1})

	ctx := m.Send(Confirm{Index: 1, Value: operator.Exists})
	if len(ctx.Values) != 2 {
		t.Fatalf("len(Values) = %d, want 2 after EXISTS", len(ctx.Values))
	}
	if ctx.FocusTarget != 1 {
		t.Errorf("FocusTarget = %d, want 1", ctx.FocusTarget)
	}
	if !m.IsComplete() {
		t.Error("EXISTS expression should be complete without a value")
	}

	// switching back to a unary operator restores an empty value slot
	ctx = m.Send(Confirm{Index: 1, Value: operator.NotEqual})
	if len(ctx.Values) != 3 || ctx.Values.At(2) != nil {
		t.Errorf("Values = %v, want value slot restored and empty", ctx.Values)
	}
}

func TestFilterMachine_ConfirmPastActiveSlotsIgnored(t *testing.T) {
	origins := NewTokenSet("owner", operator.Exists, nil, testRegistry)
	m := newTestMachine(origins)
	m.Send(Focus{Index: 1})

	ctx := m.Send(Confirm{Index: ValueSlot, Value: "x"})
	if !ctx.Values.Equal(origins) {
		t.Errorf("Values = %v, want %v unchanged", ctx.Values, origins)
	}
	if op, _ := ctx.Values.Operator(); op != operator.Exists {
		t.Errorf("operator = %v, want EXISTS kept", op)
	}
	if ctx.FocusTarget != 1 {
		t.Errorf("FocusTarget = %d, want 1", ctx.FocusTarget)
	}
}

func TestFilterMachine_RemoveBacksOutTokens(t *testing.T) {
	m := newTestMachine(NewTokenSet("prop", operator.Equal, nil, testRegistry))
	m.Send(Focus{Index: 2})

	ctx := m.Send(Remove{})
	if ctx.Values.At(0) != "prop" || ctx.Values.At(1) != nil {
		t.Errorf("first backspace: Values = %v, want [prop _ _]", ctx.Values)
	}
	if ctx.FocusTarget != 1 {
		t.Errorf("first backspace: FocusTarget = %d, want 1", ctx.FocusTarget)
	}

	ctx = m.Send(Remove{})
	if !ctx.Values.IsEmpty() {
		t.Errorf("second backspace: Values = %v, want all undefined", ctx.Values)
	}
	if ctx.FocusTarget != 0 {
		t.Errorf("second backspace: FocusTarget = %d, want 0", ctx.FocusTarget)
	}

	ctx = m.Send(Remove{})
	if !ctx.Values.IsEmpty() || ctx.FocusTarget != 0 {
		t.Errorf("third backspace: Values = %v target = %d", ctx.Values, ctx.FocusTarget)
	}
}

func TestFilterMachine_RemoveZeroArityRestoresValueSlot(t *testing.T) {
	m := newTestMachine(NewTokenSet("prop", operator.NotExists, nil, testRegistry))
	m.Send(Focus{Index: 1})

	ctx := m.Send(Remove{})
	if len(ctx.Values) != 3 {
		t.Errorf("len(Values) = %d, want 3 once the zero-arity operator is gone", len(ctx.Values))
	}
}

func TestFilterMachine_BlurKeepsValues(t *testing.T) {
	m := newTestMachine(nil)
	m.Send(Focus{Index: 0})
	m.Send(Confirm{Index: 0, Value: "status"})

	ctx := m.Send(Blur{})
	if ctx.Focused {
		t.Error("Focused = true after BLUR")
	}
	if ctx.Values.At(0) != "status" {
		t.Errorf("BLUR cleared the property: %v", ctx.Values)
	}
}

func TestFilterMachine_ResetRestoresSnapshot(t *testing.T) {
	origins := NewTokenSet("status", operator.Equal, "ok", testRegistry)
	m := newTestMachine(origins)
	m.Send(Focus{Index: 2})
	m.Send(Remove{})
	if !m.IsDirty() {
		t.Fatal("IsDirty() = false after REMOVE")
	}

	ctx := m.Send(Reset{Snapshot: m.Origins()})
	if !ctx.Values.Equal(origins) {
		t.Errorf("Values = %v, want %v", ctx.Values, origins)
	}
	if ctx.Focused || ctx.State != StatePreview {
		t.Errorf("focused=%v state=%s, want false/preview", ctx.Focused, ctx.State)
	}
	if ctx.FocusTarget != 2 {
		t.Errorf("FocusTarget = %d, want 2 (last slot of a full set)", ctx.FocusTarget)
	}

	// preview again, so FOCUSONLASTEDIT applies
	ctx = m.Send(FocusOnLastEdit{})
	if !ctx.Focused {
		t.Error("FOCUSONLASTEDIT after RESET should focus")
	}
}

func TestFilterMachine_ResetWithoutSnapshotKeepsValues(t *testing.T) {
	m := newTestMachine(nil)
	m.Send(Focus{Index: 0})
	m.Send(Confirm{Index: 0, Value: "status"})

	ctx := m.Send(Reset{})
	if ctx.Values.At(0) != "status" {
		t.Errorf("RESET without snapshot changed values: %v", ctx.Values)
	}
	if ctx.FocusTarget != 1 {
		t.Errorf("FocusTarget = %d, want 1 (first empty slot)", ctx.FocusTarget)
	}
}

func TestFilterMachine_UnknownEventIsRecovered(t *testing.T) {
	m := newTestMachine(NewTokenSet("status", nil, nil, testRegistry))
	before := m.Context()

	ctx := m.Send(nil)
	if !ctx.Values.Equal(before.Values) || ctx.FocusTarget != before.FocusTarget {
		t.Errorf("context changed after unknown event: %+v", ctx)
	}
}

func TestTransition_UnknownEventPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Transition(nil event) did not panic")
		}
	}()
	Transition(NewContext(nil), nil, testRegistry)
}

func TestFilterMachine_Listeners(t *testing.T) {
	m := newTestMachine(nil)
	calls := 0
	id := m.AddListener(func(ctx Context) { calls++ })

	m.Send(Focus{Index: 0})
	m.RemoveListener(id)
	m.Send(Blur{})

	if calls != 1 {
		t.Errorf("listener calls = %d, want 1", calls)
	}
}

func TestFilterMachine_Reinit(t *testing.T) {
	m := newTestMachine(NewTokenSet("a", operator.Equal, "1", testRegistry))
	m.Send(Focus{Index: 0})

	m.Reinit(NewTokenSet("b", operator.Exists, nil, testRegistry))
	ctx := m.Context()
	if ctx.State != StatePreview || ctx.Focused {
		t.Errorf("Reinit left state=%s focused=%v", ctx.State, ctx.Focused)
	}
	if ctx.Values.At(0) != "b" || len(ctx.Values) != 2 {
		t.Errorf("Reinit values = %v", ctx.Values)
	}
}

// Random CONFIRM/REMOVE sequences must keep the focus in range and keep
// completeness equal to its definition.
func TestTransition_RandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	properties := []any{"service", "latency", "region"}
	operators := []any{operator.Equal, operator.GreaterThan, operator.Exists, operator.NotExists, operator.In}
	values := []any{"api", 0, 12.5, false, "", []string{"a"}}

	for run := 0; run < 200; run++ {
		ctx := Transition(NewContext(nil), Focus{Index: 0}, testRegistry)

		for step := 0; step < 25; step++ {
			var ev FilterEvent
			switch rng.Intn(4) {
			case 0:
				ev = Remove{}
			case 1:
				ev = Confirm{Index: 0, Value: properties[rng.Intn(len(properties))]}
			case 2:
				ev = Confirm{Index: 1, Value: operators[rng.Intn(len(operators))]}
			default:
				ev = Confirm{Index: rng.Intn(5) - 1, Value: values[rng.Intn(len(values))]}
			}
			ctx = Transition(ctx, ev, testRegistry)

			if ctx.FocusTarget < 0 || ctx.FocusTarget >= len(ctx.Values) {
				t.Fatalf("run %d step %d: FocusTarget %d outside [0,%d)", run, step, ctx.FocusTarget, len(ctx.Values))
			}

			_, hasProp := ctx.Values.Property()
			op, hasOp := ctx.Values.Operator()
			want := hasProp && hasOp && (testRegistry.IsZeroArity(op) || IsValueExist(ctx.Values.At(ValueSlot)))
			if got := ctx.Values.IsComplete(testRegistry); got != want {
				t.Fatalf("run %d step %d: IsComplete = %v, want %v for %v", run, step, got, want, ctx.Values)
			}

			if hasOp && testRegistry.IsZeroArity(op) && len(ctx.Values) != 2 {
				t.Fatalf("run %d step %d: zero-arity operator with %d slots", run, step, len(ctx.Values))
			}
		}
	}
}
