package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# chlog Configuration
# See 'chlog config -h' for commands, 'chlog config keys' for all options

# Output
changelog_file: CHANGELOG.md          # Markdown document releases are merged into

# History
target_ref: HEAD                      # Ref whose history is released (--to overrides)
fallback_window: 30                   # Commits used when no stable release tag exists (1-1000)
git_backend: go-git                   # Repository access: go-git | cli

# Links
tag_prefix: v                         # Prefix turning a version into its release tag
repository_url: ""                    # Web URL of the repository (empty = derive from origin)
compare_url: ""                       # Template with {from} and {to} (empty = <repository_url>/compare/{from}...{to})
commit_url: ""                        # Template with {hash} (empty = <repository_url>/commit/{hash})
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_file": "CHANGELOG.md",
		"target_ref":     "HEAD",
		// fallback_window: Size of the recent-history window used when no stable
		// release tag is an ancestor of the target.
		"fallback_window": 30,
		"tag_prefix":      "v",
		// repository_url: Empty means derive from the "origin" remote at run time.
		"repository_url": "",
		"compare_url":    "",
		"commit_url":     "",
		// git_backend: go-git needs no git executable; cli matches `git log` exactly.
		"git_backend": "go-git",
	}
}
