package bootstrap

import (
	"fmt"

	"github.com/boolean-maybe/filterline/config"
)

// EnsureDataInitialized makes sure a schema exists, offering sample data on first run.
// Returns (proceed, error) where proceed indicates if the user wants to continue.
func EnsureDataInitialized(cfg *config.Config) (bool, error) {
	proceed, err := config.EnsureDataInitialized(cfg)
	if err != nil {
		return false, fmt.Errorf("initialize data: %w", err)
	}
	return proceed, nil
}
