package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Backends the CLI can mirror
const (
	BackendLocal  = "local"  // sqlite document store on this machine
	BackendRemote = "remote" // the upcycle server
)

// Config holds user preferences
type Config struct {
	Backend   string `yaml:"backend" json:"backend"`       // local or remote
	DBPath    string `yaml:"db_path" json:"db_path"`       // Local document database
	LocalUser string `yaml:"local_user" json:"local_user"` // User id bound with the local backend
	Username  string `yaml:"username" json:"username"`     // Display name of the local user
	ScanDelay string `yaml:"scan_delay" json:"scan_delay"` // Simulated scan duration, e.g. "2.5s"

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns the directory holding config, data and logs.
// UPCYCLE_HOME overrides ~/.upcycle.
func Dir() (string, error) {
	if dir := os.Getenv("UPCYCLE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".upcycle"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	logPath, dbPath := "", ""
	if dir != "" {
		logPath = filepath.Join(dir, "logs", "upcycle.log")
		dbPath = filepath.Join(dir, "upcycle.db")
	}

	return &Config{
		Backend:    BackendLocal,
		DBPath:     dbPath,
		LocalUser:  "local",
		Username:   "User",
		ScanDelay:  "2.5s",
		LogLevel:   getEnv("UPCYCLE_LOG_LEVEL", "INFO"),
		LogFile:    getEnv("UPCYCLE_LOG_FILE", logPath),
		LogConsole: getEnv("UPCYCLE_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks the values a user may have edited by hand
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal, BackendRemote:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendLocal, BackendRemote)
	}
	if _, err := c.ScanDuration(); err != nil {
		return err
	}
	return nil
}

// ScanDuration parses ScanDelay; empty means zero
func (c *Config) ScanDuration() (time.Duration, error) {
	if c.ScanDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.ScanDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid scan_delay %q: %w", c.ScanDelay, err)
	}
	return d, nil
}

// Path returns the location of config.yaml
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads config from the default location
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads config from path, returning defaults when it is missing
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves config to the default location
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes config to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
