package model

import "fmt"

// FilterEvent is an input to the filter edit machine.
// The set of events is closed: only the types in this file implement it.
type FilterEvent interface {
	filterEvent()
	fmt.Stringer
}

// KeepTarget leaves the focus target unchanged on Focus
const KeepTarget = -1

// Focus enters edit mode, optionally moving the focus target
type Focus struct {
	Index int // KeepTarget to leave the target where it is
}

// FocusTarget moves the focus target to a slot
type FocusTarget struct {
	Index int
}

// FocusOnLastEdit resumes editing where the user left off. Only valid from preview.
type FocusOnLastEdit struct{}

// Confirm writes a value into a slot
type Confirm struct {
	Index int
	Value any
}

// Remove clears the last slot that still holds a value (backspace on an empty input)
type Remove struct{}

// Blur drops focus without touching the values
type Blur struct{}

// Reset restores values to Snapshot (or keeps the current values when nil)
// and leaves edit mode. Bound to Escape.
type Reset struct {
	Snapshot TokenSet
}

func (Focus) filterEvent() {}
func (FocusTarget) filterEvent() {}
func (FocusOnLastEdit) filterEvent() {}
func (Confirm) filterEvent() {}
func (Remove) filterEvent() {}
func (Blur) filterEvent() {}
func (Reset) filterEvent() {}

func (e Focus) String() string { return fmt.Sprintf("FOCUS(%d)", e.Index) }
func (e FocusTarget) String() string { return fmt.Sprintf("FOCUSTARGET(%d)", e.Index) }
func (FocusOnLastEdit) String() string { return "FOCUSONLASTEDIT" }
func (e Confirm) String() string { return fmt.Sprintf("CONFIRM(%d, %v)", e.Index, e.Value) }
func (Remove) String() string { return "REMOVE" }
func (Blur) String() string { return "BLUR" }
func (e Reset) String() string { return fmt.Sprintf("RESET(%v)", e.Snapshot) }
