package config

// Viper configuration loader: project config, then user config, then the working directory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from config.yaml
type Config struct {
	Logging struct {
		Level string `mapstructure:"level"` // "debug", "info", "warn", "error"
	} `mapstructure:"logging"`

	Header struct {
		Visible bool `mapstructure:"visible"`
	} `mapstructure:"header"`

	Appearance struct {
		Theme string `mapstructure:"theme"` // "dark", "light", "auto"
	} `mapstructure:"appearance"`

	// Data file overrides; empty means resolve through the path manager
	Data struct {
		Schema  string `mapstructure:"schema"`
		Records string `mapstructure:"records"`
		Views   string `mapstructure:"views"`
		Watch   bool   `mapstructure:"watch"` // reload records when the file changes
	} `mapstructure:"data"`

	Hints struct {
		Max      int  `mapstructure:"max"`
		Observed bool `mapstructure:"observed"` // extend schema hints with record values
	} `mapstructure:"hints"`

	// Startup state, usually from the command line
	Startup struct {
		View   string `mapstructure:"view"`
		Filter string `mapstructure:"filter"`
		Print  bool   `mapstructure:"print"`
		Export string `mapstructure:"export"`
		Import string `mapstructure:"import"`
	} `mapstructure:"startup"`
}

const defaultMaxHints = 20

var appConfig *Config

// LoadConfig loads configuration from config.yaml.
// Priority order (first found wins): --config flag, project config, user config, current directory.
// Missing config.yaml means defaults.
func LoadConfig() (*Config, error) {
	return loadConfig(os.Args[1:])
}

func loadConfig(args []string) (*Config, error) {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	flagSet, err := parseFlags(args)
	if err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if explicit, _ := flagSet.GetString("config"); explicit != "" {
		viper.SetConfigFile(explicit)
	} else {
		viper.AddConfigPath(GetProjectDir())
		viper.AddConfigPath(GetConfigDir())
		viper.AddConfigPath(".")
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("no config.yaml found, using defaults")
		} else {
			slog.Error("error reading config file", "error", err)
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		slog.Debug("loaded configuration", "file", viper.ConfigFileUsed())
	}

	viper.SetEnvPrefix("FILTERLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := bindFlags(flagSet); err != nil {
		slog.Warn("failed to bind command line flags", "error", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		slog.Error("failed to unmarshal config", "error", err)
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Hints.Max < 1 {
		cfg.Hints.Max = defaultMaxHints
	}

	appConfig = cfg
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("logging.level", "error")
	viper.SetDefault("header.visible", true)
	viper.SetDefault("appearance.theme", "auto")
	viper.SetDefault("hints.max", defaultMaxHints)
	viper.SetDefault("hints.observed", true)
	viper.SetDefault("data.watch", true)
}

// flagBindings maps command line flags to the viper keys they override
var flagBindings = map[string]string{
	"log-level": "logging.level",
	"schema":    "data.schema",
	"records":   "data.records",
	"views":     "data.views",
	"view":      "startup.view",
	"filter":    "startup.filter",
	"print":     "startup.print",
	"export":    "startup.export",
	"import":    "startup.import",
}

func parseFlags(args []string) (*pflag.FlagSet, error) {
	flagSet := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flagSet.ParseErrorsWhitelist.UnknownFlags = true
	flagSet.SetOutput(io.Discard)

	flagSet.String("config", "", "Path to config.yaml")
	flagSet.String("log-level", "", "Log level (debug, info, warn, error)")
	flagSet.String("schema", "", "Field schema file")
	flagSet.String("records", "", "Records file")
	flagSet.String("views", "", "Saved views file")
	flagSet.String("view", "", "Saved view to open, by id or name")
	flagSet.String("filter", "", "Filter clauses, e.g. 'latency > 250, owner exists'")
	flagSet.Bool("print", false, "Print matching rows and exit")
	flagSet.String("export", "", "Write the filters as msgpack to FILE and exit")
	flagSet.String("import", "", "Load filters from a msgpack FILE written by --export")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	return flagSet, nil
}

// bindFlags binds the parsed flags to viper so they override config values.
// Unset flags fall through to the config file.
func bindFlags(flagSet *pflag.FlagSet) error {
	for name, key := range flagBindings {
		if err := viper.BindPFlag(key, flagSet.Lookup(name)); err != nil {
			return fmt.Errorf("bind %s: %w", name, err)
		}
	}
	return nil
}

// GetConfig returns the loaded configuration, loading it on first use
func GetConfig() *Config {
	if appConfig == nil {
		cfg, err := LoadConfig()
		if err != nil {
			slog.Warn("failed to load config, using defaults", "error", err)
			setDefaults()
			cfg = &Config{}
			_ = viper.Unmarshal(cfg)
		}
		appConfig = cfg
	}
	return appConfig
}

// SchemaFile returns the schema path: explicit setting first, then the path manager
func (c *Config) SchemaFile() string {
	return pick(c.Data.Schema, SchemaFilename)
}

// RecordsFile returns the records path
func (c *Config) RecordsFile() string {
	return pick(c.Data.Records, RecordsFilename)
}

// ViewsFile returns the saved views path
func (c *Config) ViewsFile() string {
	return pick(c.Data.Views, ViewsFilename)
}

func pick(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	return GetDataFile(name)
}

// SaveHeaderVisible saves the header visibility setting to config.yaml
func SaveHeaderVisible(visible bool) error {
	viper.Set("header.visible", visible)
	return saveConfig()
}

// GetHeaderVisible returns the header visibility setting
func GetHeaderVisible() bool {
	return viper.GetBool("header.visible")
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = GetConfigFile()
	}
	return viper.WriteConfigAs(configFile)
}

// GetTheme returns the appearance theme setting
func GetTheme() string {
	theme := viper.GetString("appearance.theme")
	if theme == "" {
		return "auto"
	}
	return theme
}

// GetEffectiveTheme resolves "auto" to an actual theme from COLORFGBG ("fg;bg")
func GetEffectiveTheme() string {
	theme := GetTheme()
	if theme != "auto" {
		return theme
	}
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			// 0-7 = dark backgrounds, 8+ = light
			if bg := parts[len(parts)-1]; bg >= "8" {
				return "light"
			}
		}
	}
	return "dark"
}

// GetContentBackgroundColor returns the background color for the help overlay
func GetContentBackgroundColor() tcell.Color {
	if GetEffectiveTheme() == "dark" {
		return tcell.ColorBlack
	}
	return tcell.ColorDefault
}

// GetContentTextColor returns the text color for the help overlay
func GetContentTextColor() tcell.Color {
	if GetEffectiveTheme() == "dark" {
		return tcell.ColorWhite
	}
	return tcell.ColorBlack
}
