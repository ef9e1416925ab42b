package controller

import (
	"github.com/boolean-maybe/filterline/model"
)

// ViewEntry is one entry of the navigation stack
type ViewEntry struct {
	ViewID model.ViewID
	Params map[string]any
}

// viewStack is the navigation history. The filter view is always at the bottom;
// help and saved views are pushed over it.
type viewStack struct {
	entries []ViewEntry
}

func newViewStack() *viewStack {
	return &viewStack{entries: make([]ViewEntry, 0, 4)}
}

func (s *viewStack) push(viewID model.ViewID, params map[string]any) {
	s.entries = append(s.entries, ViewEntry{ViewID: viewID, Params: params})
}

// pop removes and returns the top entry; nil on an empty stack
func (s *viewStack) pop() *ViewEntry {
	if len(s.entries) == 0 {
		return nil
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &top
}

// replaceTopView swaps the top entry; false on an empty stack
func (s *viewStack) replaceTopView(viewID model.ViewID, params map[string]any) bool {
	if len(s.entries) == 0 {
		return false
	}
	s.entries[len(s.entries)-1] = ViewEntry{ViewID: viewID, Params: params}
	return true
}

func (s *viewStack) currentView() *ViewEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

func (s *viewStack) currentViewID() model.ViewID {
	if top := s.currentView(); top != nil {
		return top.ViewID
	}
	return ""
}

func (s *viewStack) previousView() *ViewEntry {
	if len(s.entries) < 2 {
		return nil
	}
	return &s.entries[len(s.entries)-2]
}

// contains reports whether a view is anywhere on the stack
func (s *viewStack) contains(viewID model.ViewID) bool {
	for _, e := range s.entries {
		if e.ViewID == viewID {
			return true
		}
	}
	return false
}

func (s *viewStack) canGoBack() bool {
	return len(s.entries) > 1
}

func (s *viewStack) depth() int {
	return len(s.entries)
}

func (s *viewStack) clear() {
	s.entries = s.entries[:0]
}
