package config

// Build information, set via -ldflags "-X github.com/boolean-maybe/filterline/config.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
