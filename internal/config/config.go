// Package config provides hierarchical configuration for relnotes using koanf.
// Priority: environment variables (RELNOTES_*) > project config
// (.relnotes/config.yml or .relnotes/config.json) > user config
// (~/.config/relnotes/config.yml) > defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "RELNOTES_"

// ConfigSource tracks where a configuration layer came from.
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration is the merged relnotes configuration.
type Configuration struct {
	// StorePath is the YAML file holding imported releases.
	StorePath string `koanf:"store_path" yaml:"store_path" json:"store_path" validate:"required"`
	// OutputFormat is the default rendering of parse, list and show.
	OutputFormat string `koanf:"output_format" yaml:"output_format" json:"output_format" validate:"oneof=table json yaml markdown"`
	// Plain disables colors and icons.
	Plain bool `koanf:"plain" yaml:"plain" json:"plain"`
	// Workers bounds how many files are parsed at once.
	Workers int `koanf:"workers" yaml:"workers" json:"workers" validate:"min=1,max=64"`

	GitHub GitHubConfig `koanf:"github" yaml:"github" json:"github"`
	Watch  WatchConfig  `koanf:"watch" yaml:"watch" json:"watch"`

	// Sources lists the layers that contributed, lowest priority first.
	Sources []ConfigSource `koanf:"-" yaml:"-" json:"-"`
}

// GitHubConfig configures 'relnotes publish'.
type GitHubConfig struct {
	Owner string `koanf:"owner" yaml:"owner" json:"owner"`
	Repo  string `koanf:"repo" yaml:"repo" json:"repo"`
	// Token falls back to GITHUB_TOKEN when unset.
	Token     string `koanf:"token" yaml:"token" json:"token"`
	Draft     bool   `koanf:"draft" yaml:"draft" json:"draft"`
	TagPrefix string `koanf:"tag_prefix" yaml:"tag_prefix" json:"tag_prefix"`
}

// WatchConfig configures 'relnotes watch'.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce" yaml:"debounce" json:"debounce" validate:"min=0"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path. Files ending in
	// .json are parsed as JSON, everything else as YAML.
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (tests).
	UserConfigPath string
	// WarningWriter receives warnings (default: os.Stderr).
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings.
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)
	sources := []ConfigSource{SourceDefault}

	loadDefaults(k)

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath, _ = UserConfigPath()
	}
	if fileExists(userPath) {
		if err := loadConfigFile(k, userPath, SourceUser); err != nil {
			return nil, err
		}
		sources = append(sources, SourceUser)
	}

	projectPath, err := resolveProjectConfig(opts.ProjectConfigPath, warningWriter, opts.SkipWarnings)
	if err != nil {
		return nil, err
	}
	if projectPath != "" {
		if err := loadConfigFile(k, projectPath, SourceProject); err != nil {
			return nil, err
		}
		sources = append(sources, SourceProject)
	}

	if hasEnvOverrides() {
		sources = append(sources, SourceEnv)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// resolveProjectConfig picks the project file. An explicit path must exist;
// otherwise YAML wins over JSON and having both is reported.
func resolveProjectConfig(customPath string, warningWriter io.Writer, skipWarnings bool) (string, error) {
	if customPath != "" {
		if !fileExists(customPath) {
			return "", fmt.Errorf("config file not found: %s", customPath)
		}
		return customPath, nil
	}

	yamlPath := ProjectConfigPath()
	jsonPath := ProjectJSONConfigPath()
	yamlExists, jsonExists := fileExists(yamlPath), fileExists(jsonPath)

	switch {
	case yamlExists:
		if jsonExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: %s ignored, using %s\n", jsonPath, yamlPath)
		}
		return yamlPath, nil
	case jsonExists:
		return jsonPath, nil
	default:
		return "", nil
	}
}

// loadConfigFile validates and loads one config file.
func loadConfigFile(k *koanf.Koanf, path string, source ConfigSource) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", source, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
	}
	return nil
}

func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StorePath = expandHomePath(cfg.StorePath)

	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.Plain = true
	}

	return &cfg, nil
}

// Redacted returns a copy that is safe to print.
func (c Configuration) Redacted() Configuration {
	if c.GitHub.Token != "" {
		c.GitHub.Token = maskSecret(c.GitHub.Token)
	}
	return c
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func hasEnvOverrides() bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, EnvPrefix) {
			return true
		}
	}
	return false
}

// nestedEnvSections are the config sections reachable from flat env names.
var nestedEnvSections = []string{"github_", "watch_"}

// envTransform converts environment variable names to config keys.
// Example: RELNOTES_GITHUB_TOKEN -> github.token, RELNOTES_STORE_PATH -> store_path
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range nestedEnvSections {
		if strings.HasPrefix(key, section) {
			return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
