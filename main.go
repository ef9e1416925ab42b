package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/boolean-maybe/filterline/config"
	"github.com/boolean-maybe/filterline/internal/app"
	"github.com/boolean-maybe/filterline/internal/batch"
	"github.com/boolean-maybe/filterline/internal/bootstrap"
)

// main runs the application bootstrap and starts the TUI or the batch run.
func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("filterline version %s\ncommit: %s\nbuilt: %s\n",
			config.Version, config.GitCommit, config.BuildDate)
		os.Exit(0)
	}

	// Initialize paths early - this must succeed for the application to function
	if err := config.InitPaths(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	result, err := bootstrap.Bootstrap()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if result == nil {
		// User chose not to set up any data
		return
	}

	if result.Batch {
		opts := batch.Options{
			Print:  result.Cfg.Startup.Print,
			Export: result.Cfg.Startup.Export,
		}
		err := batch.Run(opts, result.Stores.Records, result.Controllers.FilterBar.Descriptors(), os.Stdout)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	defer result.App.Stop()
	defer result.RootLayout.Cleanup()
	defer result.CancelFunc()

	if err := app.Run(result.App, result.RootLayout); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}

	if err := config.SaveHeaderVisible(result.HeaderConfig.GetUserPreference()); err != nil {
		slog.Warn("failed to save header visibility preference", "error", err)
	}
}
