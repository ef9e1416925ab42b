package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// sample destinations offered by the first-run prompt
const (
	seedProject = "project"
	seedUser    = "user"
	seedNone    = "none"
)

// PromptForSampleData presents a Huh form asking where to write the sample data.
// Returns (destination, proceed, error).
func PromptForSampleData() (string, bool, error) {
	destination := seedProject

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("No field schema found. Write sample data?").
				Description("A schema and a few request records to try the filter bar on").
				Options(
					huh.NewOption("This project (.filterline/)", seedProject),
					huh.NewOption("My user config ("+GetConfigDir()+")", seedUser),
					huh.NewOption("No, exit", seedNone),
				).
				Value(&destination),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("form error: %w", err)
	}

	return destination, destination != seedNone, nil
}

// EnsureDataInitialized offers sample data when the schema file is missing.
// Returns (proceed, error). proceed is false when the user declined.
func EnsureDataInitialized(cfg *Config) (bool, error) {
	schemaFile := cfg.SchemaFile()
	if _, err := os.Stat(schemaFile); err == nil {
		return true, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat schema file: %w", err)
	}

	// an explicit path that does not exist is a user error, not a first run
	if cfg.Data.Schema != "" {
		return false, fmt.Errorf("schema file %s does not exist", schemaFile)
	}

	destination, proceed, err := PromptForSampleData()
	if err != nil {
		return false, fmt.Errorf("failed to prompt for sample data: %w", err)
	}
	if !proceed {
		return false, nil
	}

	dir := GetProjectDir()
	if destination == seedUser {
		dir = GetConfigDir()
	}
	written, err := WriteSamples(dir)
	if err != nil {
		return false, fmt.Errorf("failed to write sample data: %w", err)
	}
	for _, path := range written {
		fmt.Printf("✓ Wrote %s\n", path)
	}
	return true, nil
}
