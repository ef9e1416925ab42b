package model

// FilterParams are the navigation params of the filter view
type FilterParams struct {
	SavedViewID string // saved view to hydrate the filter bar from; empty keeps the current filters
}

const paramSavedViewID = "savedViewID"

// EncodeFilterParams converts FilterParams into a navigation params map
func EncodeFilterParams(p FilterParams) map[string]any {
	if p.SavedViewID == "" {
		return nil
	}
	return map[string]any{paramSavedViewID: p.SavedViewID}
}

// DecodeFilterParams reads FilterParams from a navigation params map.
// Missing or mistyped entries decode to the zero value.
func DecodeFilterParams(params map[string]any) FilterParams {
	if params == nil {
		return FilterParams{}
	}
	id, _ := params[paramSavedViewID].(string)
	return FilterParams{SavedViewID: id}
}
