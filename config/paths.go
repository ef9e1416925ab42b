package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

var (
	// ErrNoHome indicates that the user's home directory could not be determined
	ErrNoHome = errors.New("unable to determine home directory")

	// ErrPathManagerInit indicates that the PathManager failed to initialize
	ErrPathManagerInit = errors.New("failed to initialize path manager")
)

const appName = "filterline"

// file names inside the data directories
const (
	SchemaFilename  = "schema.yaml"
	RecordsFilename = "records.yaml"
	ViewsFilename   = "views.yaml"
	configFilename  = "config.yaml"
	logFilename     = "filterline.log"
)

// PathManager manages all file system paths for filterline
type PathManager struct {
	configDir   string // User config directory
	cacheDir    string // User cache directory
	projectRoot string // Current working directory
}

func newPathManager() (*PathManager, error) {
	configDir, err := getUserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("get config directory: %w", err)
	}

	cacheDir, err := getUserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache directory: %w", err)
	}

	projectRoot, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get current directory: %w", err)
	}

	return &PathManager{
		configDir:   configDir,
		cacheDir:    cacheDir,
		projectRoot: projectRoot,
	}, nil
}

// getUserConfigDir returns the platform-appropriate user config directory
func getUserConfigDir() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNoHome
	}

	switch runtime.GOOS {
	case "darwin":
		// prefer ~/.config when it exists, else the native location
		dotConfigDir := filepath.Join(homeDir, ".config")
		if info, err := os.Stat(dotConfigDir); err == nil && info.IsDir() {
			return filepath.Join(dotConfigDir, appName), nil
		}
		return filepath.Join(homeDir, "Library", "Application Support", appName), nil

	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appName), nil

	default:
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// getUserCacheDir returns the platform-appropriate user cache directory
func getUserCacheDir() (string, error) {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNoHome
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Caches", appName), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		return filepath.Join(homeDir, "AppData", "Local", appName), nil
	default:
		return filepath.Join(homeDir, ".cache", appName), nil
	}
}

// ConfigDir returns the user config directory
func (pm *PathManager) ConfigDir() string {
	return pm.configDir
}

// CacheDir returns the user cache directory
func (pm *PathManager) CacheDir() string {
	return pm.cacheDir
}

// ConfigFile returns the path to the user config file
func (pm *PathManager) ConfigFile() string {
	return filepath.Join(pm.configDir, configFilename)
}

// ProjectDir returns the project-local data directory (.filterline/)
func (pm *PathManager) ProjectDir() string {
	return filepath.Join(pm.projectRoot, "."+appName)
}

// ProjectConfigFile returns the path to the project-local config file
func (pm *PathManager) ProjectConfigFile() string {
	return filepath.Join(pm.ProjectDir(), configFilename)
}

// DataFile resolves a data file: the project copy wins over the user config copy.
// When neither exists the project path is returned.
func (pm *PathManager) DataFile(name string) string {
	project := filepath.Join(pm.ProjectDir(), name)
	if _, err := os.Stat(project); err == nil {
		return project
	}
	user := filepath.Join(pm.configDir, name)
	if _, err := os.Stat(user); err == nil {
		return user
	}
	return project
}

// LogFile returns the path of the application log
func (pm *PathManager) LogFile() string {
	return filepath.Join(pm.cacheDir, logFilename)
}

// EnsureDirs creates all necessary directories with appropriate permissions
func (pm *PathManager) EnsureDirs() error {
	//nolint:gosec // G301: 0755 is appropriate for config directory
	if err := os.MkdirAll(pm.configDir, 0755); err != nil {
		return fmt.Errorf("create config directory %s: %w", pm.configDir, err)
	}

	// cache directory is best effort
	//nolint:gosec // G301: 0755 is appropriate for cache directory
	_ = os.MkdirAll(pm.cacheDir, 0755)

	//nolint:gosec // G301: 0755 is appropriate for project data directory
	if err := os.MkdirAll(pm.ProjectDir(), 0755); err != nil {
		return fmt.Errorf("create project directory %s: %w", pm.ProjectDir(), err)
	}
	return nil
}

var (
	pathManager     *PathManager
	pathManagerOnce sync.Once
	pathManagerErr  error
	pathManagerMu   sync.RWMutex // Protects pathManager for reset operations
)

// getPathManager returns the global PathManager, initializing it on first call
func getPathManager() (*PathManager, error) {
	pathManagerMu.RLock()
	if pathManager != nil {
		defer pathManagerMu.RUnlock()
		return pathManager, pathManagerErr
	}
	pathManagerMu.RUnlock()

	pathManagerMu.Lock()
	defer pathManagerMu.Unlock()

	if pathManager != nil {
		return pathManager, pathManagerErr
	}

	pathManagerOnce.Do(func() {
		pathManager, pathManagerErr = newPathManager()
	})
	return pathManager, pathManagerErr
}

// InitPaths initializes the path manager. Must be called early in application startup.
func InitPaths() error {
	_, err := getPathManager()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPathManagerInit, err)
	}
	return nil
}

// ResetPathManager resets the path manager singleton for testing purposes.
func ResetPathManager() {
	pathManagerMu.Lock()
	defer pathManagerMu.Unlock()
	pathManager = nil
	pathManagerErr = nil
	pathManagerOnce = sync.Once{}
}

func mustGetPathManager() *PathManager {
	pm, err := getPathManager()
	if err != nil {
		panic(fmt.Sprintf("path manager not initialized: %v (call InitPaths() first)", err))
	}
	return pm
}

// Exported accessors panic if InitPaths() has not succeeded.

// GetConfigDir returns the user config directory
func GetConfigDir() string {
	return mustGetPathManager().ConfigDir()
}

// GetCacheDir returns the user cache directory
func GetCacheDir() string {
	return mustGetPathManager().CacheDir()
}

// GetConfigFile returns the path to the user config file
func GetConfigFile() string {
	return mustGetPathManager().ConfigFile()
}

// GetProjectDir returns the project-local data directory
func GetProjectDir() string {
	return mustGetPathManager().ProjectDir()
}

// GetProjectConfigFile returns the path to the project-local config file
func GetProjectConfigFile() string {
	return mustGetPathManager().ProjectConfigFile()
}

// GetDataFile resolves a data file by name
func GetDataFile(name string) string {
	return mustGetPathManager().DataFile(name)
}

// GetLogFile returns the path of the application log
func GetLogFile() string {
	return mustGetPathManager().LogFile()
}

// EnsureDirs creates all necessary directories with appropriate permissions
func EnsureDirs() error {
	return mustGetPathManager().EnsureDirs()
}
