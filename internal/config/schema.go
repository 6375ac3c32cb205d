package config

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeDuration
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeDuration:
		return "duration"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema describes one configuration key for 'relnotes config keys'.
type ConfigKeySchema struct {
	Path          string
	Type          ConfigValueType
	AllowedValues []string
	Description   string
	Default       interface{}
}

// EnvName returns the environment variable that overrides the key.
func (s ConfigKeySchema) EnvName() string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(s.Path, ".", "_"))
}

// KnownKeys is the registry of configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"store_path": {
		Path:        "store_path",
		Type:        TypeString,
		Description: "YAML file holding imported releases",
		Default:     DefaultStorePath,
	},
	"output_format": {
		Path:          "output_format",
		Type:          TypeEnum,
		AllowedValues: []string{"table", "json", "yaml", "markdown"},
		Description:   "Default output of parse, list and show",
		Default:       "table",
	},
	"plain": {
		Path:        "plain",
		Type:        TypeBool,
		Description: "Disable colors and icons",
		Default:     false,
	},
	"workers": {
		Path:        "workers",
		Type:        TypeInt,
		Description: "Files parsed concurrently (1-64)",
		Default:     4,
	},
	"github.owner": {
		Path:        "github.owner",
		Type:        TypeString,
		Description: "Repository owner for publish",
		Default:     "",
	},
	"github.repo": {
		Path:        "github.repo",
		Type:        TypeString,
		Description: "Repository name for publish",
		Default:     "",
	},
	"github.token": {
		Path:        "github.token",
		Type:        TypeString,
		Description: "API token (falls back to GITHUB_TOKEN)",
		Default:     "",
	},
	"github.draft": {
		Path:        "github.draft",
		Type:        TypeBool,
		Description: "Create GitHub releases as drafts",
		Default:     false,
	},
	"github.tag_prefix": {
		Path:        "github.tag_prefix",
		Type:        TypeString,
		Description: "Prefix of the release tag name",
		Default:     "release-",
	},
	"watch.debounce": {
		Path:        "watch.debounce",
		Type:        TypeDuration,
		Description: "Quiet period before watch re-imports",
		Default:     "500ms",
	},
}

// ErrUnknownKey is returned when asking for a key outside KnownKeys.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return fmt.Sprintf("unknown configuration key: %s", e.Key)
}

// GetKeySchema returns the schema for a known configuration key.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns the known key paths in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
