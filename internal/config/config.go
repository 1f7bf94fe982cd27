package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for json2csv. It only feeds
// the CLI layer; the conversion core takes its parameters explicitly.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Split  SplitConfig  `yaml:"split"`
	Dev    DevConfig    `yaml:"dev"`
}

// OutputConfig controls where output files go and how derived names look
type OutputConfig struct {
	// Dir is the directory for derived output paths. Empty means next to
	// the input file, or the working directory for stdin input.
	Dir string `yaml:"dir"`
	// SnakeCaseNames converts derived output file names to snake_case.
	// Explicit -o paths are never rewritten.
	SnakeCaseNames bool `yaml:"snake_case_names"`
}

// SplitConfig controls row-count file splitting
type SplitConfig struct {
	// MaxRowsPerFile caps the data rows per output file. 0 disables
	// splitting.
	MaxRowsPerFile int `yaml:"max_rows_per_file"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:            "",
			SnakeCaseNames: false,
		},
		Split: SplitConfig{
			MaxRowsPerFile: 0,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Split.MaxRowsPerFile < 0 {
		return nil, fmt.Errorf("invalid max_rows_per_file %d: must not be negative", cfg.Split.MaxRowsPerFile)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".json2csv.yml", ".json2csv.yaml", "json2csv.yml", "json2csv.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// LoadConfigWithCLI loads config with CLI argument precedence. A positive
// cliMaxRows overrides the config file value; cliDebug turns debug on but
// never off.
func LoadConfigWithCLI(configPath string, cliMaxRows int, cliDebug bool) (*Config, error) {
	if cliMaxRows < 0 {
		return nil, fmt.Errorf("invalid --max-rows %d: must not be negative", cliMaxRows)
	}

	// Discover a config file when none was given explicitly
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg := NewConfig()
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliMaxRows > 0 {
		cfg.Split.MaxRowsPerFile = cliMaxRows
	}
	if cliDebug {
		cfg.Dev.Debug = true
	}

	return cfg, nil
}

// DeriveOutputPath returns the default output path for an input file,
// applying the configured naming rules. An empty inputPath (stdin or
// interactive input) derives "output.csv".
func (c *Config) DeriveOutputPath(inputPath string) string {
	name := "output.csv"
	if inputPath != "" {
		stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		if c.Output.SnakeCaseNames {
			stem = strcase.ToSnake(stem)
		}
		name = stem + ".csv"
	}

	dir := c.Output.Dir
	if dir == "" && inputPath != "" {
		dir = filepath.Dir(inputPath)
	}
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
