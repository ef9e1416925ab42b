package bootstrap

import (
	"errors"
	"fmt"

	"github.com/boolean-maybe/filterline/config"
)

// errViewAndImport rejects two startup sources that both replace the filter list
var errViewAndImport = errors.New("--view and --import cannot be combined")

// LoadConfig loads the application configuration and checks the startup flags.
// Returns an error if configuration loading fails.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := validateStartup(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateStartup(cfg *config.Config) error {
	if cfg.Startup.View != "" && cfg.Startup.Import != "" {
		return errViewAndImport
	}
	return nil
}

// isBatch reports whether the run skips the TUI
func isBatch(cfg *config.Config) bool {
	return cfg.Startup.Print || cfg.Startup.Export != ""
}
