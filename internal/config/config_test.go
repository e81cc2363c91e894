package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Verify analysis defaults
	if cfg.Analysis.SevenZipPath != "" {
		t.Errorf("expected empty seven_zip_path, got %s", cfg.Analysis.SevenZipPath)
	}

	if cfg.Analysis.Workers != 0 {
		t.Errorf("expected workers 0 (auto), got %d", cfg.Analysis.Workers)
	}

	// Verify split defaults
	if cfg.Split.MaxCommitSize != 200 {
		t.Errorf("expected max_commit_size 200, got %d", cfg.Split.MaxCommitSize)
	}

	if cfg.Split.ComplexityThreshold != 50 {
		t.Errorf("expected complexity_threshold 50, got %d", cfg.Split.ComplexityThreshold)
	}

	// Verify commit defaults
	if !cfg.Commit.AlwaysValidate {
		t.Error("expected always_validate true")
	}

	// Verify output defaults
	if cfg.Output.Format != "text" {
		t.Errorf("expected format text, got %s", cfg.Output.Format)
	}

	// Verify history defaults
	if !cfg.History.Enabled {
		t.Error("expected history enabled")
	}

	if cfg.History.Limit != 50 {
		t.Errorf("expected history limit 50, got %d", cfg.History.Limit)
	}
}

func TestIsValidFormat(t *testing.T) {
	tests := []struct {
		format string
		valid  bool
	}{
		{"text", true},
		{"yaml", true},
		{"json", true},
		{"invalid", false},
		{"", false},
		{"JSON", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			result := IsValidFormat(tt.format)
			if result != tt.valid {
				t.Errorf("IsValidFormat(%q) = %v, want %v", tt.format, result, tt.valid)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid format",
			modify: func(c *Config) {
				c.Output.Format = "invalid"
			},
			wantErr: true,
		},
		{
			name: "negative workers",
			modify: func(c *Config) {
				c.Analysis.Workers = -1
			},
			wantErr: true,
		},
		{
			name: "explicit worker count",
			modify: func(c *Config) {
				c.Analysis.Workers = 8
			},
			wantErr: false,
		},
		{
			name: "zero max_commit_size",
			modify: func(c *Config) {
				c.Split.MaxCommitSize = 0
			},
			wantErr: true,
		},
		{
			name: "negative complexity_threshold",
			modify: func(c *Config) {
				c.Split.ComplexityThreshold = -5
			},
			wantErr: true,
		},
		{
			name: "zero history limit",
			modify: func(c *Config) {
				c.History.Limit = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	defaults := DefaultConfig()

	t.Run("empty loaded uses all defaults", func(t *testing.T) {
		loaded := &Config{}
		merged := Merge(loaded, defaults)

		if merged.Output.Format != defaults.Output.Format {
			t.Errorf("expected format %s, got %s", defaults.Output.Format, merged.Output.Format)
		}

		if merged.Split.MaxCommitSize != defaults.Split.MaxCommitSize {
			t.Errorf("expected max_commit_size %d, got %d", defaults.Split.MaxCommitSize, merged.Split.MaxCommitSize)
		}

		if !merged.Commit.AlwaysValidate {
			t.Error("expected always_validate true")
		}
	})

	t.Run("loaded values take precedence", func(t *testing.T) {
		loaded := &Config{
			Analysis: AnalysisConfig{
				SevenZipPath: "/opt/7zip/7zz",
				Workers:      8,
			},
			Split: SplitConfig{
				MaxCommitSize: 400,
			},
			Output: OutputConfig{
				Format: "json",
			},
		}
		merged := Merge(loaded, defaults)

		if merged.Analysis.SevenZipPath != "/opt/7zip/7zz" {
			t.Errorf("expected seven_zip_path /opt/7zip/7zz, got %s", merged.Analysis.SevenZipPath)
		}

		if merged.Analysis.Workers != 8 {
			t.Errorf("expected workers 8, got %d", merged.Analysis.Workers)
		}

		if merged.Split.MaxCommitSize != 400 {
			t.Errorf("expected max_commit_size 400, got %d", merged.Split.MaxCommitSize)
		}

		if merged.Output.Format != "json" {
			t.Errorf("expected format json, got %s", merged.Output.Format)
		}

		// Unset values should use defaults
		if merged.Split.ComplexityThreshold != defaults.Split.ComplexityThreshold {
			t.Errorf("expected complexity_threshold %d, got %d",
				defaults.Split.ComplexityThreshold, merged.Split.ComplexityThreshold)
		}

		if merged.History.Limit != defaults.History.Limit {
			t.Errorf("expected history limit %d, got %d", defaults.History.Limit, merged.History.Limit)
		}
	})

	t.Run("false booleans fall back to true defaults", func(t *testing.T) {
		loaded := &Config{
			Commit:  CommitConfig{AlwaysValidate: false},
			History: HistoryConfig{Enabled: false},
		}
		merged := Merge(loaded, defaults)

		// YAML can't distinguish unset from false, so false loses to a
		// true default
		if !merged.Commit.AlwaysValidate {
			t.Error("expected always_validate to fall back to true")
		}
		if !merged.History.Enabled {
			t.Error("expected history enabled to fall back to true")
		}
	})
}

func TestFindConfigDir(t *testing.T) {
	// Create a temp directory structure
	tmpDir, err := os.MkdirTemp("", "cq-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	// Create nested directories: tmpDir/project/subdir
	projectDir := filepath.Join(tmpDir, "project")
	subDir := filepath.Join(projectDir, "subdir")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}

	t.Run("no config dir returns error", func(t *testing.T) {
		_, err := FindConfigDir(subDir)
		if err == nil {
			t.Error("expected error when no .cq directory exists")
		}
	})

	// Create .cq directory in project root
	configDir := filepath.Join(projectDir, ConfigDirName)
	if err := os.Mkdir(configDir, 0755); err != nil {
		t.Fatal(err)
	}

	t.Run("finds config dir in current directory", func(t *testing.T) {
		found, err := FindConfigDir(projectDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if found != configDir {
			t.Errorf("expected %s, got %s", configDir, found)
		}
	})

	t.Run("finds config dir in parent directory", func(t *testing.T) {
		found, err := FindConfigDir(subDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if found != configDir {
			t.Errorf("expected %s, got %s", configDir, found)
		}
	})
}

func TestEnsureConfigDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "cq-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("creates config directory", func(t *testing.T) {
		dir, err := EnsureConfigDir(tmpDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		expectedDir := filepath.Join(tmpDir, ConfigDirName)
		if dir != expectedDir {
			t.Errorf("expected %s, got %s", expectedDir, dir)
		}

		// Verify directory exists
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("config directory not created: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("returns existing directory", func(t *testing.T) {
		// Call again, should return same directory without error
		dir, err := EnsureConfigDir(tmpDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		expectedDir := filepath.Join(tmpDir, ConfigDirName)
		if dir != expectedDir {
			t.Errorf("expected %s, got %s", expectedDir, dir)
		}
	})
}

func TestLoadFromPath(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "cq-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("loads valid config file", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		content := `
analysis:
  seven_zip_path: /usr/local/bin/7zz
  workers: 4
output:
  format: json
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromPath(configPath)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		// Check loaded values
		if cfg.Analysis.SevenZipPath != "/usr/local/bin/7zz" {
			t.Errorf("expected seven_zip_path /usr/local/bin/7zz, got %s", cfg.Analysis.SevenZipPath)
		}
		if cfg.Analysis.Workers != 4 {
			t.Errorf("expected workers 4, got %d", cfg.Analysis.Workers)
		}
		if cfg.Output.Format != "json" {
			t.Errorf("expected format json, got %s", cfg.Output.Format)
		}

		// Check defaults were applied for missing values
		if cfg.Split.MaxCommitSize != 200 {
			t.Errorf("expected default max_commit_size 200, got %d", cfg.Split.MaxCommitSize)
		}
		if cfg.History.Limit != 50 {
			t.Errorf("expected default history limit 50, got %d", cfg.History.Limit)
		}
	})

	t.Run("returns defaults for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromPath(filepath.Join(tmpDir, "nonexistent.yaml"))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		defaults := DefaultConfig()
		if cfg.Output.Format != defaults.Output.Format {
			t.Errorf("expected default format, got %s", cfg.Output.Format)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("invalid: yaml: content"), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadFromPath(configPath)
		if err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("returns error for invalid config values", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "bad-values.yaml")
		content := `
output:
  format: markdown
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadFromPath(configPath)
		if err == nil {
			t.Error("expected error for invalid format")
		}
	})
}

func TestLoad(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "cq-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("returns defaults when no config dir exists", func(t *testing.T) {
		cfg, err := Load(tmpDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		defaults := DefaultConfig()
		if cfg.Output.Format != defaults.Output.Format {
			t.Errorf("expected default config")
		}
	})

	t.Run("loads config from .cq directory", func(t *testing.T) {
		// Create .cq directory and config file
		configDir := filepath.Join(tmpDir, ConfigDirName)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			t.Fatal(err)
		}

		content := `
split:
  max_commit_size: 300
`
		configPath := filepath.Join(configDir, ConfigFileName)
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(tmpDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		if cfg.Split.MaxCommitSize != 300 {
			t.Errorf("expected max_commit_size 300, got %d", cfg.Split.MaxCommitSize)
		}
	})
}

func TestSaveDefault(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "cq-config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	t.Run("creates default config file", func(t *testing.T) {
		configPath, err := SaveDefault(tmpDir)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		expectedPath := filepath.Join(tmpDir, ConfigDirName, ConfigFileName)
		if configPath != expectedPath {
			t.Errorf("expected path %s, got %s", expectedPath, configPath)
		}

		// Verify file exists and is valid
		cfg, err := LoadFromPath(configPath)
		if err != nil {
			t.Errorf("failed to load saved config: %v", err)
		}

		defaults := DefaultConfig()
		if cfg.Output.Format != defaults.Output.Format {
			t.Errorf("saved config doesn't match defaults")
		}
	})

	t.Run("fails if config already exists", func(t *testing.T) {
		// Config was created in previous test
		_, err := SaveDefault(tmpDir)
		if err == nil {
			t.Error("expected error when config already exists")
		}
	})
}
