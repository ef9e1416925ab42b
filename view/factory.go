package view

import (
	"log/slog"

	"github.com/boolean-maybe/filterline/controller"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/store"
	"github.com/boolean-maybe/filterline/view/renderer"
)

// ViewFactory instantiates views by ID, injecting required dependencies.
// It holds references to shared state (stores, controllers) needed by views.

// FactoryDeps are the shared objects views are built from
type FactoryDeps struct {
	FilterBar  *controller.FilterBarController
	SavedViews *controller.SavedViewsController
	Records    *store.RecordStore
	Views      *store.ViewStore
	Operators  *operator.Registry
	Schema     model.SchemaLookup
}

// ViewFactory creates views on demand
type ViewFactory struct {
	deps     FactoryDeps
	renderer renderer.MarkdownRenderer
}

// NewViewFactory creates a view factory
func NewViewFactory(deps FactoryDeps) *ViewFactory {
	return &ViewFactory{deps: deps, renderer: renderer.New()}
}

// CreateView instantiates a view by ID with optional parameters
func (f *ViewFactory) CreateView(viewID model.ViewID, params map[string]any) controller.View {
	switch viewID {
	case model.FilterViewID:
		if id := model.DecodeFilterParams(params).SavedViewID; id != "" {
			slog.Debug("filter view for saved view", "id", id)
		}
		return NewFilterView(f.deps.FilterBar, f.deps.SavedViews, f.deps.Records, f.deps.Operators, f.deps.Schema)
	case model.HelpViewID:
		return NewHelpView(f.renderer)
	case model.SavedViewsViewID:
		return NewSavedViewsView(f.deps.SavedViews, f.deps.Views)
	default:
		slog.Error("unknown view ID", "viewID", viewID)
		return nil
	}
}
