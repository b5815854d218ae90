package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appDirName     = "chat-composer"
	databaseName   = "sessions.db"
	boltName       = "sessions.bolt"
	configFileName = "config.yaml"
	logFileName    = "chat-composer.log"
)

// DataPaths holds the resolved locations of the application's files
type DataPaths struct {
	BaseDir  string // per-user data directory
	Database string // sqlite database holding the session collection
	BoltFile string // bbolt file used when storage_backend is bolt
	Config   string // optional YAML config
	LogFile  string // log destination while the TUI owns the terminal
}

// DetectDataPaths resolves the data directory based on the operating system
func DetectDataPaths() (DataPaths, error) {
	if dir := os.Getenv("CHAT_COMPOSER_HOME"); dir != "" {
		return dataPathsFor(dir), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return DataPaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	var baseDir string
	switch runtime.GOOS {
	case "darwin":
		baseDir = filepath.Join(home, "Library/Application Support", appDirName)
	case "linux":
		// Respect XDG_DATA_HOME when set
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			baseDir = filepath.Join(xdg, appDirName)
		} else {
			baseDir = filepath.Join(home, ".local/share", appDirName)
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			baseDir = filepath.Join(appData, appDirName)
		} else {
			baseDir = filepath.Join(home, "AppData", "Roaming", appDirName)
		}
	default:
		baseDir = filepath.Join(home, "."+appDirName)
	}

	return dataPathsFor(baseDir), nil
}

func dataPathsFor(baseDir string) DataPaths {
	return DataPaths{
		BaseDir:  baseDir,
		Database: filepath.Join(baseDir, databaseName),
		BoltFile: filepath.Join(baseDir, boltName),
		Config:   filepath.Join(baseDir, configFileName),
		LogFile:  filepath.Join(baseDir, logFileName),
	}
}

// EnsureBaseDir creates the data directory if needed
func (dp DataPaths) EnsureBaseDir() error {
	return os.MkdirAll(dp.BaseDir, 0755)
}

// StorageFile returns the default session file for backend
func (dp DataPaths) StorageFile(backend string) string {
	if backend == BackendBolt {
		return dp.BoltFile
	}
	return dp.Database
}

// DatabaseExists checks if the session database file exists
func (dp DataPaths) DatabaseExists() bool {
	_, err := os.Stat(dp.Database)
	return err == nil
}
