package model

import (
	"sync"
)

// LayoutModel holds the view shown in the content area of the root layout.
// Navigation writes it; RootLayout observes it and swaps views.
type LayoutModel struct {
	mu             sync.RWMutex
	contentViewID  ViewID
	contentParams  map[string]any
	revision       uint64
	listeners      map[int]func()
	nextListenerID int
}

// NewLayoutModel creates an empty layout model
func NewLayoutModel() *LayoutModel {
	return &LayoutModel{
		listeners:      make(map[int]func()),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
	}
}

// SetContent replaces the content view and bumps the revision
func (lm *LayoutModel) SetContent(viewID ViewID, params map[string]any) {
	lm.mu.Lock()
	lm.contentViewID = viewID
	lm.contentParams = params
	lm.revision++
	lm.mu.Unlock()
	lm.notifyListeners()
}

// Touch bumps the revision without changing content, forcing observers to re-check derived state
func (lm *LayoutModel) Touch() {
	lm.mu.Lock()
	lm.revision++
	lm.mu.Unlock()
	lm.notifyListeners()
}

// GetContentViewID returns the current content view id
func (lm *LayoutModel) GetContentViewID() ViewID {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return lm.contentViewID
}

// GetContentParams returns the current content params
func (lm *LayoutModel) GetContentParams() map[string]any {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return lm.contentParams
}

// GetRevision returns a counter incremented on every change
func (lm *LayoutModel) GetRevision() uint64 {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	return lm.revision
}

// AddListener registers a change callback and returns its id
func (lm *LayoutModel) AddListener(listener func()) int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	id := lm.nextListenerID
	lm.nextListenerID++
	lm.listeners[id] = listener
	return id
}

// RemoveListener unregisters a callback; unknown ids are ignored
func (lm *LayoutModel) RemoveListener(id int) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	delete(lm.listeners, id)
}

func (lm *LayoutModel) notifyListeners() {
	lm.mu.RLock()
	listeners := make([]func(), 0, len(lm.listeners))
	for _, l := range lm.listeners {
		listeners = append(listeners, l)
	}
	lm.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}
