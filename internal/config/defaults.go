package config

import "time"

// DefaultStorePath is where imported releases live unless store_path is set.
const DefaultStorePath = "~/.relnotes/store.yml"

// GetDefaultConfigTemplate returns a commented config file for new projects.
func GetDefaultConfigTemplate() string {
	return `# relnotes configuration
# See 'relnotes config keys' for all options

store_path: ~/.relnotes/store.yml     # YAML file holding imported releases
output_format: table                  # table | json | yaml | markdown
plain: false                          # Disable colors and icons
workers: 4                            # Files parsed concurrently (1-64)

github:
  owner: ""                           # Repository owner for 'relnotes publish'
  repo: ""                            # Repository name
  token: ""                           # Falls back to GITHUB_TOKEN
  draft: false                        # Create releases as drafts
  tag_prefix: release-                # Tag name is <prefix><version>

watch:
  debounce: 500ms                     # Quiet period before re-importing
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"store_path":    DefaultStorePath,
		"output_format": "table",
		"plain":         false,
		"workers":       4,
		"github": map[string]interface{}{
			"owner":      "",
			"repo":       "",
			"token":      "",
			"draft":      false,
			"tag_prefix": "release-",
		},
		"watch": map[string]interface{}{
			"debounce": (500 * time.Millisecond).String(),
		},
	}
}
