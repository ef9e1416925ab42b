package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/boolean-maybe/filterline/config"
	"github.com/boolean-maybe/filterline/internal/batch"
	"github.com/boolean-maybe/filterline/model"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/query"
)

// ApplyStartup preloads the filter bar from --view or --import and then appends --filter clauses.
// Returns the navigation params of the initial filter view.
func ApplyStartup(cfg *config.Config, controllers *Controllers, schema model.SchemaLookup, registry *operator.Registry) (map[string]any, error) {
	var params model.FilterParams

	if err := validateStartup(cfg); err != nil {
		return nil, err
	}

	if name := cfg.Startup.View; name != "" {
		view, err := controllers.SavedViews.Load(name)
		if err != nil {
			return nil, fmt.Errorf("open saved view %q: %w", name, err)
		}
		params.SavedViewID = view.ID
		slog.Info("saved view preloaded", "id", view.ID, "name", view.Name)
	}

	if path := cfg.Startup.Import; path != "" {
		descriptors, err := batch.Import(path)
		if err != nil {
			return nil, fmt.Errorf("import filters: %w", err)
		}
		// undecodable entries are dropped and logged by the filter bar
		errs := controllers.FilterBar.Hydrate(descriptors)
		slog.Info("filters imported", "path", path, "loaded", len(descriptors)-len(errs), "dropped", len(errs))
	}

	if text := cfg.Startup.Filter; text != "" {
		clauses, err := query.ParseClauses(text, schema, registry)
		if err != nil {
			return nil, fmt.Errorf("parse --filter: %w", err)
		}
		for _, tokens := range clauses {
			controllers.FilterBar.CreateItem(tokens)
		}
		slog.Info("filters preloaded", "num_filters", len(clauses))
	}

	return model.EncodeFilterParams(params), nil
}
