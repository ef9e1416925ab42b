package model

// ViewID identifies a view type
type ViewID string

// view identifiers
const (
	FilterViewID     ViewID = "filter"
	HelpViewID       ViewID = "help"
	SavedViewsViewID ViewID = "saved_views"
)

// ParseViewID maps a view name to its id
func ParseViewID(name string) (ViewID, bool) {
	switch id := ViewID(name); id {
	case FilterViewID, HelpViewID, SavedViewsViewID:
		return id, true
	}
	return "", false
}

// IsOverlay reports whether a view is shown over the filter view rather than replacing it
func IsOverlay(id ViewID) bool {
	return id == HelpViewID || id == SavedViewsViewID
}
