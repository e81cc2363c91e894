package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the cq configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the cq configuration directory
const ConfigDirName = ".cq"

// Config holds all cq configuration
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Split    SplitConfig    `yaml:"split"`
	Commit   CommitConfig   `yaml:"commit"`
	Output   OutputConfig   `yaml:"output"`
	History  HistoryConfig  `yaml:"history"`
}

// AnalysisConfig holds configuration for coverage report analysis
type AnalysisConfig struct {
	SevenZipPath string `yaml:"seven_zip_path"`
	Workers      int    `yaml:"workers"`
}

// SplitConfig holds configuration for commit split proposals
type SplitConfig struct {
	MaxCommitSize       int `yaml:"max_commit_size"`
	ComplexityThreshold int `yaml:"complexity_threshold"`
}

// CommitConfig holds configuration for commit creation
type CommitConfig struct {
	AlwaysValidate bool `yaml:"always_validate"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	Format string `yaml:"format"`
}

// HistoryConfig holds configuration for the local run history
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
	Limit   int  `yaml:"limit"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .cq/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		// No config dir found, return defaults
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Merge with defaults
	merged := Merge(loaded, DefaultConfig())

	// Validate the merged config
	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .cq directory by walking up from startDir.
// Returns the path to the .cq directory if found.
func FindConfigDir(startDir string) (string, error) {
	// Get absolute path
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		// Move to parent directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, config not found
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .cq directory if it doesn't exist.
// Returns the path to the .cq directory.
func EnsureConfigDir(workDir string) (string, error) {
	// Get absolute path
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	// Check if it already exists
	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	// Create the directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	// Validate output format
	if !IsValidFormat(cfg.Output.Format) {
		return fmt.Errorf("%w: format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Output.Format)
	}

	// Validate workers (zero means one worker per CPU)
	if cfg.Analysis.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d",
			ErrInvalidConfig, cfg.Analysis.Workers)
	}

	// Validate split thresholds (should be positive)
	if cfg.Split.MaxCommitSize <= 0 {
		return fmt.Errorf("%w: max_commit_size must be positive, got %d",
			ErrInvalidConfig, cfg.Split.MaxCommitSize)
	}

	if cfg.Split.ComplexityThreshold <= 0 {
		return fmt.Errorf("%w: complexity_threshold must be positive, got %d",
			ErrInvalidConfig, cfg.Split.ComplexityThreshold)
	}

	// Validate history limit (should be positive)
	if cfg.History.Limit <= 0 {
		return fmt.Errorf("%w: history limit must be positive, got %d",
			ErrInvalidConfig, cfg.History.Limit)
	}

	return nil
}

// SaveDefault writes the default configuration to .cq/config.yaml in workDir.
// Creates the .cq directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	// Add header comment
	header := "# cq CLI configuration\n# See https://github.com/covtools/cq for documentation\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
