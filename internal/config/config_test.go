package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// isolate points every config source at empty temp locations.
func isolate(t *testing.T) LoadOptions {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("NO_COLOR", "")
	return LoadOptions{
		UserConfigPath: filepath.Join(t.TempDir(), "missing.yml"),
		WarningWriter:  &bytes.Buffer{},
	}
}

func TestLoad_Defaults(t *testing.T) {
	opts := isolate(t)

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".relnotes", "store.yml"), cfg.StorePath)
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "release-", cfg.GitHub.TagPrefix)
	assert.Equal(t, []ConfigSource{SourceDefault}, cfg.Sources)
}

func TestLoad_Layering(t *testing.T) {
	tests := map[string]struct {
		user    string
		project string
		env     map[string]string
		check   func(t *testing.T, cfg *Configuration)
	}{
		"user file overrides defaults": {
			user: "workers: 8\n",
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, 8, cfg.Workers)
				assert.Contains(t, cfg.Sources, SourceUser)
			},
		},
		"project overrides user": {
			user:    "output_format: json\n",
			project: "output_format: markdown\ngithub:\n  owner: datex\n  repo: footprint\n",
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "markdown", cfg.OutputFormat)
				assert.Equal(t, "datex", cfg.GitHub.Owner)
				assert.Equal(t, "footprint", cfg.GitHub.Repo)
			},
		},
		"env overrides project": {
			project: "workers: 2\n",
			env: map[string]string{
				"RELNOTES_WORKERS":        "16",
				"RELNOTES_GITHUB_TOKEN":   "ghp_secret_value",
				"RELNOTES_WATCH_DEBOUNCE": "2s",
				"RELNOTES_STORE_PATH":     "/tmp/store.yml",
			},
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, 16, cfg.Workers)
				assert.Equal(t, "ghp_secret_value", cfg.GitHub.Token)
				assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
				assert.Equal(t, "/tmp/store.yml", cfg.StorePath)
				assert.Contains(t, cfg.Sources, SourceEnv)
			},
		},
		"github token fallback": {
			env: map[string]string{"GITHUB_TOKEN": "from-actions"},
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "from-actions", cfg.GitHub.Token)
			},
		},
		"no color forces plain": {
			env: map[string]string{"NO_COLOR": "1"},
			check: func(t *testing.T, cfg *Configuration) {
				assert.True(t, cfg.Plain)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			opts := isolate(t)
			if tt.user != "" {
				opts.UserConfigPath = writeFile(t, t.TempDir(), "config.yml", tt.user)
			}
			if tt.project != "" {
				require.NoError(t, os.MkdirAll(ProjectConfigDir(), 0o755))
				writeFile(t, ".", ProjectConfigPath(), tt.project)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadWithOptions(opts)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_ProjectJSON(t *testing.T) {
	opts := isolate(t)
	require.NoError(t, os.MkdirAll(ProjectConfigDir(), 0o755))
	writeFile(t, ".", ProjectJSONConfigPath(), `{"output_format": "yaml", "workers": 3}`)

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoad_YAMLWinsOverJSON(t *testing.T) {
	opts := isolate(t)
	var warnings bytes.Buffer
	opts.WarningWriter = &warnings

	require.NoError(t, os.MkdirAll(ProjectConfigDir(), 0o755))
	writeFile(t, ".", ProjectConfigPath(), "workers: 5\n")
	writeFile(t, ".", ProjectJSONConfigPath(), `{"workers": 9}`)

	cfg, err := LoadWithOptions(opts)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Workers)
	assert.Contains(t, warnings.String(), "Warning:")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := map[string]struct {
		project   string
		wantField string
		wantMsg   string
	}{
		"workers too high": {
			project:   "workers: 100\n",
			wantField: "workers",
			wantMsg:   "must be at most 64",
		},
		"workers zero": {
			project:   "workers: 0\n",
			wantField: "workers",
			wantMsg:   "must be at least 1",
		},
		"unknown format": {
			project:   "output_format: xml\n",
			wantField: "output_format",
			wantMsg:   "must be one of: table, json, yaml, markdown",
		},
		"owner without repo": {
			project:   "github:\n  owner: datex\n",
			wantField: "github",
			wantMsg:   "owner and repo must be set together",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			opts := isolate(t)
			opts.ProjectConfigPath = writeFile(t, t.TempDir(), "config.yml", tt.project)

			_, err := LoadWithOptions(opts)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), err.Error())
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	opts := isolate(t)
	opts.ProjectConfigPath = filepath.Join(t.TempDir(), "nope.yml")

	_, err := LoadWithOptions(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestValidateYAMLSyntax(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]struct {
		content  string
		wantErr  bool
		wantLine int
	}{
		"valid":       {content: "workers: 4\n"},
		"empty":       {content: "   \n"},
		"bad mapping": {content: "workers: 4\n  plain: [\n", wantErr: true, wantLine: 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, name+".yml", tt.content)
			err := ValidateYAMLSyntax(path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Positive(t, verr.Line)
		})
	}

	assert.NoError(t, ValidateYAMLSyntax(filepath.Join(dir, "missing.yml")))
}

func TestEnvTransform(t *testing.T) {
	tests := map[string]string{
		"RELNOTES_STORE_PATH":       "store_path",
		"RELNOTES_OUTPUT_FORMAT":    "output_format",
		"RELNOTES_GITHUB_TAG_PREFIX": "github.tag_prefix",
		"RELNOTES_WATCH_DEBOUNCE":   "watch.debounce",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, envTransform(in))
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := Configuration{GitHub: GitHubConfig{Token: "ghp_0123456789abcdef"}}
	red := cfg.Redacted()
	assert.Equal(t, "ghp_************cdef", red.GitHub.Token)
	assert.Equal(t, "ghp_0123456789abcdef", cfg.GitHub.Token)

	short := Configuration{GitHub: GitHubConfig{Token: "abc"}}
	assert.Equal(t, "****", short.Redacted().GitHub.Token)
}

func TestKnownKeys(t *testing.T) {
	for key := range GetDefaults() {
		if key == "github" || key == "watch" {
			continue
		}
		_, err := GetKeySchema(key)
		assert.NoError(t, err, key)
	}

	_, err := GetKeySchema("nope")
	assert.Equal(t, ErrUnknownKey{Key: "nope"}, err)

	s, err := GetKeySchema("github.tag_prefix")
	require.NoError(t, err)
	assert.Equal(t, "RELNOTES_GITHUB_TAG_PREFIX", s.EnvName())
	assert.Len(t, SortedKeys(), len(KnownKeys))
}
