package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/apploader/pkg/errors"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for apploader
	EnvDataDir = "APPLOADER_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for apploader
	EnvConfigDir = "APPLOADER_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for apploader-specific files
	AppDirName = "apploader"

	// GamesDir is the subdirectory of the data dir holding per-title data
	GamesDir = "games"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "apploader.log"

	// DefaultManifestName is the file name of the add-on content manifest
	DefaultManifestName = "dlc.json"
)

// Paths provides centralized path management for apploader
type Paths interface {
	DataDir() string
	ConfigDir() string
	StateDir() string
	GamesDir() string
	TitleDir(programIDBase uint64) string
	ManifestPath(programIDBase uint64) string
	ConfigFilePath() string
	LogFilePath() string
}

type paths struct {
	xdgData   string
	xdgConfig string
	xdgState  string

	gamesDir     string
	manifestName string
}

// Option customizes a Paths instance
type Option func(*paths)

// WithGamesDir overrides the games directory. Empty values are ignored.
func WithGamesDir(dir string) Option {
	return func(p *paths) {
		if dir != "" {
			p.gamesDir = expandHome(dir)
		}
	}
}

// WithManifestName overrides the add-on content manifest file name.
// Empty values are ignored.
func WithManifestName(name string) Option {
	return func(p *paths) {
		if name != "" {
			p.manifestName = name
		}
	}
}

// New creates a new Paths instance
func New(opts ...Option) (Paths, error) {
	p := &paths{manifestName: DefaultManifestName}

	p.setupXDGDirs()
	p.gamesDir = filepath.Join(p.xdgData, GamesDir)

	for _, opt := range opts {
		opt(p)
	}

	absGames, err := filepath.Abs(p.gamesDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for games dir")
	}
	p.gamesDir = absGames

	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// XDG doesn't provide StateHome on every platform, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", AppDirName)
	}
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

func (p *paths) DataDir() string   { return p.xdgData }
func (p *paths) ConfigDir() string { return p.xdgConfig }
func (p *paths) StateDir() string  { return p.xdgState }
func (p *paths) GamesDir() string  { return p.gamesDir }

// TitleDir returns the per-title directory, named by the program id base
// as 16 lowercase hex digits
func (p *paths) TitleDir(programIDBase uint64) string {
	return filepath.Join(p.gamesDir, fmt.Sprintf("%016x", programIDBase))
}

// ManifestPath returns the add-on content manifest location for a title
func (p *paths) ManifestPath(programIDBase uint64) string {
	return filepath.Join(p.TitleDir(programIDBase), p.manifestName)
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}
