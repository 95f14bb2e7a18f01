// Package config provides configuration management for evexport.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/evexport/evexport/internal/constants"
)

// Config is the single configuration struct threaded through the API client,
// the credential manager and the path builder. Values are resolved in order:
// built-in defaults, then the config file, then EVEXPORT_* environment
// variables, then command-line flags (applied by the CLI layer).
//
// Config file location:
//   - Windows: %USERPROFILE%\.config\evexport\config
//   - Unix: ~/.config/evexport/config
//
// INI format:
//
//	[platform]
//	url = https://api.evexport.com
//	api_token = <long-lived export token>
//
//	[storage]
//	bucket = evexport-events-data
//	account_id = 12345
//	region = us-east-1
type Config struct {
	// PlatformURL is the export API base URL.
	PlatformURL string `ini:"url"`

	// APIToken is the long-lived token exchanged for temporary S3
	// credentials. Empty means direct-credentials mode: the account ID and
	// bucket must be provided and the ambient AWS credential chain is used.
	APIToken string `ini:"api_token"`

	// Bucket is the export bucket, used only when synthesizing a base path.
	Bucket string `ini:"bucket"`

	// AccountID scopes the synthesized base path in direct-credentials mode.
	AccountID string `ini:"account_id"`

	// Region is the bucket region.
	Region string `ini:"region"`
}

// Validation errors
var (
	ErrMissingPlatformURL = errors.New("platform url is required")
)

// Environment variable names. Flags override these; these override the file.
const (
	EnvAPIToken    = "EVEXPORT_API_TOKEN"
	EnvPlatformURL = "EVEXPORT_PLATFORM_URL"
	EnvAccountID   = "EVEXPORT_ACCOUNT_ID"
	EnvBucket      = "EVEXPORT_BUCKET"
)

// DefaultConfigPath returns the default path for the config file.
//   - Windows: %USERPROFILE%\.config\evexport\config
//   - Unix: ~/.config/evexport/config
func DefaultConfigPath() (string, error) {
	var configDir string

	if runtime.GOOS == "windows" {
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", errors.New("USERPROFILE environment variable not set")
		}
		configDir = filepath.Join(userProfile, ".config", "evexport")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config", "evexport")
	}

	return filepath.Join(configDir, "config"), nil
}

// Defaults returns a Config populated with built-in defaults.
func Defaults() *Config {
	return &Config{
		PlatformURL: constants.DefaultPlatformURL,
		Bucket:      constants.DefaultBucket,
		Region:      constants.DefaultRegion,
	}
}

// Load resolves configuration from defaults, the config file at path (the
// default location when path is empty; a missing file is not an error) and
// the environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err == nil {
			path = defaultPath
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := loadFile(cfg, path); err != nil {
				return nil, err
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile merges values from the INI file at path into cfg.
func loadFile(cfg *Config, path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := file.Section("platform").MapTo(cfg); err != nil {
		return fmt.Errorf("failed to parse [platform] section: %w", err)
	}
	if err := file.Section("storage").MapTo(cfg); err != nil {
		return fmt.Errorf("failed to parse [storage] section: %w", err)
	}

	return nil
}

// applyEnv overlays EVEXPORT_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIToken); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv(EnvPlatformURL); v != "" {
		cfg.PlatformURL = v
	}
	if v := os.Getenv(EnvAccountID); v != "" {
		cfg.AccountID = v
	}
	if v := os.Getenv(EnvBucket); v != "" {
		cfg.Bucket = v
	}
}

// Validate checks cfg for values no command could work with. Token and
// account ID are deliberately not required here: which of them is needed
// depends on the command, and resolution errors are reported there.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.PlatformURL) == "" {
		return ErrMissingPlatformURL
	}
	return nil
}
