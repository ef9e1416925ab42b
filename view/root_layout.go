package view

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/store"
	"github.com/boolean-maybe/filterline/view/header"

	"github.com/rivo/tview"
)

// ChangeNotifier is a store whose changes refresh the header stats
type ChangeNotifier interface {
	AddListener(listener store.ChangeListener) int
	RemoveListener(id int)
}

// RootLayout is a container view managing a persistent header and swappable content area.
// It observes LayoutModel for content changes and HeaderConfig for visibility changes.
type RootLayout struct {
	root        *tview.Flex
	header      *header.HeaderWidget
	contentArea *tview.Flex

	headerConfig *model.HeaderConfig
	layoutModel  *model.LayoutModel
	viewFactory  controller.ViewFactory
	stores       []ChangeNotifier

	contentView   controller.View
	lastParamsKey string

	headerListenerID  int
	layoutListenerID  int
	storeListenerIDs  []int
	lastHeaderVisible bool
	app               *tview.Application
	onViewActivated   func(controller.View)
}

// NewRootLayout creates a root layout that observes models and manages header/content
func NewRootLayout(
	hdr *header.HeaderWidget,
	headerConfig *model.HeaderConfig,
	layoutModel *model.LayoutModel,
	viewFactory controller.ViewFactory,
	app *tview.Application,
	stores ...ChangeNotifier,
) *RootLayout {
	rl := &RootLayout{
		root:              tview.NewFlex().SetDirection(tview.FlexRow),
		header:            hdr,
		contentArea:       tview.NewFlex().SetDirection(tview.FlexRow),
		headerConfig:      headerConfig,
		layoutModel:       layoutModel,
		viewFactory:       viewFactory,
		stores:            stores,
		lastHeaderVisible: headerConfig.IsVisible(),
		app:               app,
	}

	rl.layoutListenerID = layoutModel.AddListener(rl.onLayoutChange)
	rl.headerListenerID = headerConfig.AddListener(rl.onHeaderConfigChange)

	// record and saved view changes move the header stats
	for _, s := range stores {
		rl.storeListenerIDs = append(rl.storeListenerIDs, s.AddListener(rl.onStoreChange))
	}

	rl.rebuildLayout()

	return rl
}

// SetOnViewActivated registers a callback that runs when any view becomes active.
// This is used to wire up focus setters and other view-specific setup.
func (rl *RootLayout) SetOnViewActivated(callback func(controller.View)) {
	rl.onViewActivated = callback
}

// onLayoutChange is called when LayoutModel changes (content view change or Touch)
func (rl *RootLayout) onLayoutChange() {
	viewID := rl.layoutModel.GetContentViewID()
	params := rl.layoutModel.GetContentParams()

	// a Touch keeps the view instance
	paramsKey, paramsKeyOK := stableParamsKey(params)
	if paramsKeyOK && rl.contentView != nil && rl.contentView.GetViewID() == viewID && paramsKey == rl.lastParamsKey {
		rl.recomputeHeaderVisibility(rl.contentView)
		rl.updateViewStats(rl.contentView)
		return
	}

	if rl.contentView != nil {
		rl.contentView.OnBlur()
	}

	newView := rl.viewFactory.CreateView(viewID, params)
	if newView == nil {
		slog.Error("failed to create view", "viewID", viewID)
		return
	}
	if paramsKeyOK {
		rl.lastParamsKey = paramsKey
	} else {
		// params that cannot be fingerprinted always rebuild the view
		rl.lastParamsKey = ""
	}

	rl.recomputeHeaderVisibility(newView)

	rl.contentArea.Clear()
	rl.contentArea.AddItem(newView.GetPrimitive(), 0, 1, true)
	rl.contentView = newView

	rl.headerConfig.SetViewActions(convertActionRegistry(newView.GetActionRegistry()))

	// focus setters must be in place before OnFocus moves focus
	if rl.onViewActivated != nil {
		rl.onViewActivated(newView)
	}

	if rl.app != nil {
		rl.app.SetFocus(newView.GetPrimitive())
	}
	newView.OnFocus()
	rl.updateViewStats(newView)
}

// recomputeHeaderVisibility computes header visibility based on view requirements and user preference
func (rl *RootLayout) recomputeHeaderVisibility(v controller.View) {
	visible := rl.headerConfig.GetUserPreference()
	if hv, ok := v.(interface{ RequiresHeaderHidden() bool }); ok && hv.RequiresHeaderHidden() {
		visible = false
	}
	rl.headerConfig.SetVisible(visible)
}

// onHeaderConfigChange is called when HeaderConfig changes
func (rl *RootLayout) onHeaderConfigChange() {
	currentVisible := rl.headerConfig.IsVisible()
	if currentVisible != rl.lastHeaderVisible {
		rl.lastHeaderVisible = currentVisible
		rl.rebuildLayout()
	}
}

// rebuildLayout rebuilds the root flex layout based on current header visibility
func (rl *RootLayout) rebuildLayout() {
	rl.root.Clear()

	if rl.headerConfig.IsVisible() {
		rl.root.AddItem(rl.header, header.HeaderHeight, 0, false)
		rl.root.AddItem(tview.NewBox(), 1, 0, false) // spacer
	}

	rl.root.AddItem(rl.contentArea, 0, 1, true)
}

// GetPrimitive returns the root tview primitive for app.SetRoot()
func (rl *RootLayout) GetPrimitive() tview.Primitive {
	return rl.root
}

// GetActionRegistry delegates to the content view
func (rl *RootLayout) GetActionRegistry() *controller.ActionRegistry {
	if rl.contentView != nil {
		return rl.contentView.GetActionRegistry()
	}
	return controller.NewActionRegistry()
}

// GetViewID delegates to the content view
func (rl *RootLayout) GetViewID() model.ViewID {
	if rl.contentView != nil {
		return rl.contentView.GetViewID()
	}
	return ""
}

// GetContentView returns the current content view
func (rl *RootLayout) GetContentView() controller.View {
	return rl.contentView
}

// OnFocus delegates to the content view
func (rl *RootLayout) OnFocus() {
	if rl.contentView != nil {
		rl.contentView.OnFocus()
	}
}

// OnBlur delegates to the content view
func (rl *RootLayout) OnBlur() {
	if rl.contentView != nil {
		rl.contentView.OnBlur()
	}
}

// Cleanup removes all listeners
func (rl *RootLayout) Cleanup() {
	rl.layoutModel.RemoveListener(rl.layoutListenerID)
	rl.headerConfig.RemoveListener(rl.headerListenerID)
	for i, s := range rl.stores {
		s.RemoveListener(rl.storeListenerIDs[i])
	}
	rl.header.Cleanup()
}

// onStoreChange is called when records are reloaded or filtered, or saved views change
func (rl *RootLayout) onStoreChange() {
	if rl.contentView != nil {
		rl.updateViewStats(rl.contentView)
	}
}

// updateViewStats reads stats from the view and updates the header
func (rl *RootLayout) updateViewStats(v controller.View) {
	rl.headerConfig.ClearViewStats()
	if sp, ok := v.(controller.StatsProvider); ok {
		for _, stat := range sp.GetStats() {
			rl.headerConfig.SetViewStat(stat.Name, stat.Value, stat.Order)
		}
	}
}

// convertActionRegistry converts controller.ActionRegistry to []model.HeaderAction
// This avoids import cycles between model and controller packages.
func convertActionRegistry(registry *controller.ActionRegistry) []model.HeaderAction {
	if registry == nil {
		return nil
	}

	actions := registry.GetHeaderActions()
	result := make([]model.HeaderAction, len(actions))
	for i, a := range actions {
		result[i] = model.HeaderAction{
			ID:           string(a.ID),
			Key:          a.Key,
			Rune:         a.Rune,
			Label:        a.Label,
			Modifier:     a.Modifier,
			ShowInHeader: a.ShowInHeader,
		}
	}
	return result
}

// stableParamsKey produces a deterministic, collision-safe fingerprint for params
func stableParamsKey(params map[string]any) (string, bool) {
	if len(params) == 0 {
		return "", true
	}

	// Sort keys for deterministic ordering
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Build tuples of [key, value]
	tuples := make([][2]any, 0, len(keys))
	for _, k := range keys {
		tuples = append(tuples, [2]any{k, stableJSONValue(params[k])})
	}

	b, err := json.Marshal(tuples)
	if err != nil {
		// Do not silently ignore marshal errors: treat them as invalid params and disable caching
		return "", false
	}
	return string(b), true
}

// stableJSONValue converts a value to a stable JSON-encodable representation
func stableJSONValue(v any) any {
	switch x := v.(type) {
	case nil, string, bool, float64:
		return x
	case int:
		return x
	case int64:
		return x
	case uint64:
		// JSON doesn't have uint; encode as string to preserve meaning
		return map[string]string{"type": "uint64", "value": strconv.FormatUint(x, 10)}
	default:
		// Keep params scalar in navigation. For anything else, include a type tag.
		return map[string]string{"type": fmt.Sprintf("%T", v), "value": fmt.Sprintf("%v", v)}
	}
}
