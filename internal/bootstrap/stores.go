package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/boolean-maybe/filterline/config"
	"github.com/boolean-maybe/filterline/operator"
	"github.com/boolean-maybe/filterline/store"
)

// Stores holds the data the editor works on
type Stores struct {
	Schema  *store.SchemaStore
	Records *store.RecordStore
	Views   *store.ViewStore
}

// InitRegistry builds the operator registry. A bad table is a programming error and fatal.
func InitRegistry() (*operator.Registry, error) {
	registry, err := operator.NewRegistry(operator.DefaultTable())
	if err != nil {
		return nil, fmt.Errorf("build operator registry: %w", err)
	}
	return registry, nil
}

// InitStores loads the schema, the records and the saved views.
// When observed hints are enabled the schema draws value hints from the records.
func InitStores(cfg *config.Config, registry *operator.Registry) (*Stores, error) {
	schema, err := store.LoadSchema(cfg.SchemaFile())
	if err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	records, err := store.LoadRecords(cfg.RecordsFile(), registry, schema)
	if err != nil {
		return nil, fmt.Errorf("initialize records: %w", err)
	}

	views, err := store.LoadViews(cfg.ViewsFile())
	if err != nil {
		return nil, fmt.Errorf("initialize saved views: %w", err)
	}

	if cfg.Hints.Observed {
		schema.SetHintSource(records.DistinctValues, cfg.Hints.Max)
	}

	slog.Info("stores initialized",
		"schema", schema.Name(),
		"num_fields", len(schema.Fields()),
		"num_records", len(records.Rows()),
		"num_views", len(views.List()))

	return &Stores{Schema: schema, Records: records, Views: views}, nil
}
