package model

import (
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// HeaderAction is the header's copy of a controller action.
// It lives in model so the header can render hints without importing controller.
type HeaderAction struct {
	ID           string
	Key          tcell.Key
	Rune         rune
	Label        string
	Modifier     tcell.ModMask
	ShowInHeader bool
}

// HeaderStat is one name/value pair in the header stats column
type HeaderStat struct {
	Name  string
	Value string
	Order int
}

// HeaderConfig is the observable state of the header: key hints, stats and visibility
type HeaderConfig struct {
	mu             sync.RWMutex
	globalActions  []HeaderAction
	viewActions    []HeaderAction
	viewStats      map[string]HeaderStat
	baseStats      map[string]HeaderStat
	visible        bool
	userPreference bool
	listeners      map[int]func()
	nextListenerID int
}

// NewHeaderConfig creates a visible header with no actions
func NewHeaderConfig() *HeaderConfig {
	return &HeaderConfig{
		viewStats:      make(map[string]HeaderStat),
		baseStats:      make(map[string]HeaderStat),
		visible:        true,
		userPreference: true,
		listeners:      make(map[int]func()),
		nextListenerID: 1, // Start at 1 to avoid conflict with zero-value sentinel
	}
}

// SetGlobalActions sets the actions available in every view
func (hc *HeaderConfig) SetGlobalActions(actions []HeaderAction) {
	hc.mu.Lock()
	hc.globalActions = actions
	hc.mu.Unlock()
	hc.notifyListeners()
}

// GetGlobalActions returns the actions available in every view
func (hc *HeaderConfig) GetGlobalActions() []HeaderAction {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.globalActions
}

// SetViewActions sets the actions of the active view
func (hc *HeaderConfig) SetViewActions(actions []HeaderAction) {
	hc.mu.Lock()
	hc.viewActions = actions
	hc.mu.Unlock()
	hc.notifyListeners()
}

// GetViewActions returns the actions of the active view
func (hc *HeaderConfig) GetViewActions() []HeaderAction {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.viewActions
}

// SetBaseStat sets a stat that survives view switches (dataset size, schema name)
func (hc *HeaderConfig) SetBaseStat(name, value string, order int) {
	hc.mu.Lock()
	hc.baseStats[name] = HeaderStat{Name: name, Value: value, Order: order}
	hc.mu.Unlock()
	hc.notifyListeners()
}

// SetViewStat sets a stat owned by the active view
func (hc *HeaderConfig) SetViewStat(name, value string, order int) {
	hc.mu.Lock()
	hc.viewStats[name] = HeaderStat{Name: name, Value: value, Order: order}
	hc.mu.Unlock()
	hc.notifyListeners()
}

// ClearViewStats removes all view-owned stats
func (hc *HeaderConfig) ClearViewStats() {
	hc.mu.Lock()
	hc.viewStats = make(map[string]HeaderStat)
	hc.mu.Unlock()
	hc.notifyListeners()
}

// GetStats returns base and view stats ordered by Order, then Name.
// A view stat shadows a base stat of the same name.
func (hc *HeaderConfig) GetStats() []HeaderStat {
	hc.mu.RLock()
	merged := make(map[string]HeaderStat, len(hc.baseStats)+len(hc.viewStats))
	for k, v := range hc.baseStats {
		merged[k] = v
	}
	for k, v := range hc.viewStats {
		merged[k] = v
	}
	hc.mu.RUnlock()

	stats := make([]HeaderStat, 0, len(merged))
	for _, s := range merged {
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Order != stats[j].Order {
			return stats[i].Order < stats[j].Order
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

// SetVisible sets the effective visibility
func (hc *HeaderConfig) SetVisible(visible bool) {
	hc.mu.Lock()
	changed := hc.visible != visible
	hc.visible = visible
	hc.mu.Unlock()
	if changed {
		hc.notifyListeners()
	}
}

// IsVisible returns the effective visibility
func (hc *HeaderConfig) IsVisible() bool {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.visible
}

// SetUserPreference records the configured visibility and applies it
func (hc *HeaderConfig) SetUserPreference(visible bool) {
	hc.mu.Lock()
	hc.userPreference = visible
	hc.mu.Unlock()
	hc.SetVisible(visible)
}

// GetUserPreference returns the configured visibility
func (hc *HeaderConfig) GetUserPreference() bool {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.userPreference
}

// AddListener registers a change callback and returns its id
func (hc *HeaderConfig) AddListener(listener func()) int {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	id := hc.nextListenerID
	hc.nextListenerID++
	hc.listeners[id] = listener
	return id
}

// RemoveListener unregisters a callback
func (hc *HeaderConfig) RemoveListener(id int) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.listeners, id)
}

func (hc *HeaderConfig) notifyListeners() {
	hc.mu.RLock()
	listeners := make([]func(), 0, len(hc.listeners))
	for _, l := range hc.listeners {
		listeners = append(listeners, l)
	}
	hc.mu.RUnlock()

	for _, l := range listeners {
		l()
	}
}
