package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/query"
	"github.com/boolean-maybe/filterline/store"
)

// ErrNoFilters indicates a save request with an empty filter list
var ErrNoFilters = errors.New("no committed filters to save")

// SavedViewsController opens, saves and deletes saved views.
// It remembers which view the filter bar was hydrated from so a later save updates it.
type SavedViewsController struct {
	mu        sync.Mutex
	views     *store.ViewStore
	filterBar *FilterBarController
	nav       *NavigationController
	registry  *operator.Registry
	actions   *ActionRegistry
	loadedID  string
}

// NewSavedViewsController creates a saved views controller
func NewSavedViewsController(
	views *store.ViewStore,
	filterBar *FilterBarController,
	nav *NavigationController,
	registry *operator.Registry,
) *SavedViewsController {
	return &SavedViewsController{
		views:     views,
		filterBar: filterBar,
		nav:       nav,
		registry:  registry,
		actions:   SavedViewsActions(),
	}
}

// GetActionRegistry returns the saved views list actions
func (c *SavedViewsController) GetActionRegistry() *ActionRegistry {
	return c.actions
}

// Views returns the saved views
func (c *SavedViewsController) Views() []store.SavedView {
	return c.views.List()
}

// LoadedView returns the view the filter bar was last hydrated from
func (c *SavedViewsController) LoadedView() (store.SavedView, bool) {
	c.mu.Lock()
	id := c.loadedID
	c.mu.Unlock()
	if id == "" {
		return store.SavedView{}, false
	}
	v, err := c.views.Get(id)
	if err != nil {
		return store.SavedView{}, false
	}
	return v, true
}

// Load hydrates the filter bar from a saved view found by id or name.
// Filters that no longer decode against the schema are dropped and logged.
func (c *SavedViewsController) Load(idOrName string) (store.SavedView, error) {
	view, err := c.views.Find(idOrName)
	if err != nil {
		return store.SavedView{}, err
	}

	errs := c.filterBar.Hydrate(view.Filters)
	if len(errs) > 0 {
		slog.Warn("saved view partially loaded", "id", view.ID, "name", view.Name, "dropped", len(errs))
	}

	c.mu.Lock()
	c.loadedID = view.ID
	c.mu.Unlock()
	return view, nil
}

// Open loads a saved view and returns to the filter view
func (c *SavedViewsController) Open(id string) bool {
	view, err := c.Load(id)
	if err != nil {
		slog.Error("failed to open saved view", "id", id, "error", err)
		return false
	}
	if c.nav != nil {
		c.nav.PopToRoot(model.EncodeFilterParams(model.FilterParams{SavedViewID: view.ID}))
	}
	return true
}

// Delete removes a saved view. Deleting the loaded view detaches the filter bar from it.
func (c *SavedViewsController) Delete(id string) bool {
	if err := c.views.Delete(id); err != nil {
		slog.Error("failed to delete saved view", "id", id, "error", err)
		return false
	}
	c.mu.Lock()
	if c.loadedID == id {
		c.loadedID = ""
	}
	c.mu.Unlock()
	return true
}

// SaveCurrent stores the committed filters. The loaded view is updated in place;
// otherwise a new view named after the filters is created.
func (c *SavedViewsController) SaveCurrent() (store.SavedView, error) {
	descriptors := c.filterBar.Descriptors()
	if len(descriptors) == 0 {
		return store.SavedView{}, ErrNoFilters
	}

	c.mu.Lock()
	loadedID := c.loadedID
	c.mu.Unlock()

	if loadedID != "" {
		view, err := c.views.Update(loadedID, descriptors)
		if err == nil {
			return view, nil
		}
		if !errors.Is(err, store.ErrViewNotFound) {
			return store.SavedView{}, err
		}
	}

	view, err := c.views.Save(c.Summarize(descriptors), descriptors)
	if err != nil {
		return store.SavedView{}, err
	}
	c.mu.Lock()
	c.loadedID = view.ID
	c.mu.Unlock()
	return view, nil
}

// Summarize renders descriptors as a readable view name, using operator labels
func (c *SavedViewsController) Summarize(descriptors []query.Descriptor) string {
	parts := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		label := string(d.Operator)
		if desc, ok := c.registry.Describe(d.Operator); ok {
			label = desc.Label
		}

		values := make([]string, 0, len(d.Operands))
		for _, o := range d.Operands {
			v, err := o.Value()
			if err != nil {
				continue
			}
			values = append(values, fmt.Sprint(v))
		}

		part := d.Property + " " + label
		if len(values) > 0 {
			part += " " + strings.Join(values, "/")
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

// HandleAction runs a saved views list action against the selected view id
func (c *SavedViewsController) HandleAction(id ActionID, selectedID string) bool {
	switch id {
	case ActionOpenView:
		if selectedID == "" {
			return false
		}
		return c.Open(selectedID)
	case ActionDeleteView:
		if selectedID == "" {
			return false
		}
		return c.Delete(selectedID)
	case ActionBack:
		if c.nav != nil {
			return c.nav.HandleBack()
		}
		return false
	default:
		return false
	}
}
