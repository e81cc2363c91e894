package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			SevenZipPath: "",
			Workers:      0,
		},
		Split: SplitConfig{
			MaxCommitSize:       200,
			ComplexityThreshold: 50,
		},
		Commit: CommitConfig{
			AlwaysValidate: true,
		},
		Output: OutputConfig{
			Format: "text",
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   50,
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	// Merge Analysis config
	result.Analysis = mergeAnalysisConfig(loaded.Analysis, defaults.Analysis)

	// Merge Split config
	result.Split = mergeSplitConfig(loaded.Split, defaults.Split)

	// Merge Commit config
	result.Commit = mergeCommitConfig(loaded.Commit, defaults.Commit)

	// Merge Output config
	result.Output = mergeOutputConfig(loaded.Output, defaults.Output)

	// Merge History config
	result.History = mergeHistoryConfig(loaded.History, defaults.History)

	return result
}

func mergeAnalysisConfig(loaded, defaults AnalysisConfig) AnalysisConfig {
	result := AnalysisConfig{}

	// SevenZipPath: use loaded if non-empty
	if loaded.SevenZipPath != "" {
		result.SevenZipPath = loaded.SevenZipPath
	} else {
		result.SevenZipPath = defaults.SevenZipPath
	}

	// Workers: zero already means auto, so loaded always wins
	if loaded.Workers != 0 {
		result.Workers = loaded.Workers
	} else {
		result.Workers = defaults.Workers
	}

	return result
}

func mergeSplitConfig(loaded, defaults SplitConfig) SplitConfig {
	result := SplitConfig{}

	// MaxCommitSize: use loaded if non-zero
	if loaded.MaxCommitSize != 0 {
		result.MaxCommitSize = loaded.MaxCommitSize
	} else {
		result.MaxCommitSize = defaults.MaxCommitSize
	}

	// ComplexityThreshold: use loaded if non-zero
	if loaded.ComplexityThreshold != 0 {
		result.ComplexityThreshold = loaded.ComplexityThreshold
	} else {
		result.ComplexityThreshold = defaults.ComplexityThreshold
	}

	return result
}

func mergeCommitConfig(loaded, defaults CommitConfig) CommitConfig {
	result := CommitConfig{}

	// AlwaysValidate: use loaded value (bool can't distinguish unset from false)
	// YAML unmarshals a missing key as false, so when the default is true a
	// false value falls back to the default
	result.AlwaysValidate = loaded.AlwaysValidate
	if !loaded.AlwaysValidate && defaults.AlwaysValidate {
		result.AlwaysValidate = defaults.AlwaysValidate
	}

	return result
}

func mergeOutputConfig(loaded, defaults OutputConfig) OutputConfig {
	result := OutputConfig{}

	// Format: use loaded if non-empty
	if loaded.Format != "" {
		result.Format = loaded.Format
	} else {
		result.Format = defaults.Format
	}

	return result
}

func mergeHistoryConfig(loaded, defaults HistoryConfig) HistoryConfig {
	result := HistoryConfig{}

	// Enabled: same bool handling as always_validate
	result.Enabled = loaded.Enabled
	if !loaded.Enabled && defaults.Enabled {
		result.Enabled = defaults.Enabled
	}

	// Limit: use loaded if non-zero
	if loaded.Limit != 0 {
		result.Limit = loaded.Limit
	} else {
		result.Limit = defaults.Limit
	}

	return result
}

// ValidFormats lists the valid values for output format
var ValidFormats = []string{"text", "yaml", "json"}

// IsValidFormat checks if the given format value is valid
func IsValidFormat(format string) bool {
	for _, valid := range ValidFormats {
		if format == valid {
			return true
		}
	}
	return false
}
