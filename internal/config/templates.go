package config

// ProjectType represents the type of JavaScript/TypeScript project a
// `sicilian init` wizard scaffolds for.
type ProjectType string

const (
	ProjectTypeGeneric     ProjectType = "generic"
	ProjectTypeReact       ProjectType = "react"
	ProjectTypeVue         ProjectType = "vue"
	ProjectTypeNodeBackend ProjectType = "node"
)

// ProjectPreset holds include/exclude presets for a project type.
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// GetProjectPresets returns presets for different project types.
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"},
			ExcludePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/*.min.js", "**/*.bundle.js",
			},
		},
		ProjectTypeReact: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"},
			ExcludePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/.next/**", "**/coverage/**", "**/*.min.js", "**/*.bundle.js",
			},
		},
		ProjectTypeVue: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.vue"},
			ExcludePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/.nuxt/**", "**/coverage/**", "**/*.min.js", "**/*.bundle.js",
			},
		},
		ProjectTypeNodeBackend: {
			IncludePatterns: []string{"**/*.js", "**/*.ts", "**/*.mjs", "**/*.cjs"},
			ExcludePatterns: []string{
				"**/node_modules/**", "**/dist/**", "**/build/**",
				"**/test/**", "**/tests/**", "**/__tests__/**",
				"**/*.min.js", "**/*.bundle.js",
			},
		},
	}
}

// GetFullConfigTemplate returns the documented config template as JSONC.
func GetFullConfigTemplate(projectType ProjectType, nonceMode string) string {
	preset := GetProjectPresets()[projectType]
	includePatterns := formatJSONArray(preset.IncludePatterns)
	excludePatterns := formatJSONArray(preset.ExcludePatterns)

	return `{
  // sicilian configuration
  // Documentation: https://github.com/ludo-technologies/sicilian

  // ============================================================================
  // SCAN SCOPE
  // ============================================================================
  "scan": {
    // File patterns to include (glob patterns). Must not be empty; the
    // file walk selects files by extension and does not consult this list
    "include_patterns": ` + includePatterns + `,

    // File patterns to exclude (glob patterns)
    "exclude_patterns": ` + excludePatterns + `,

    // Descend into subdirectories. scan and compare take this from their
    // --recursive flag (default true) in place of this value
    "recursive": true,

    // Follow symbolic links while walking
    "follow_symlinks": false,

    // Gitignore-syntax file listing additional paths to skip. The file
    // walk always reads .sicilianignore at the root of each directory
    // argument, whatever name is set here
    "ignore_file": ".sicilianignore",

    // Parameter nonce policy: "random" (matches the reference scheme's
    // per-invocation secrets.token_hex) or "derived" (deterministic,
    // useful for reproducible CI comparisons)
    "nonce_mode": "` + nonceMode + `"
  },

  // ============================================================================
  // OUTPUT
  // ============================================================================
  "output": {
    // Report format: "text", "json", "yaml", "csv"
    "format": "text"
  },

  // ============================================================================
  // PERFORMANCE
  // ============================================================================
  "performance": {
    // Concurrent files signed at once (0 = the default of 4)
    "max_goroutines": 4,

    // Per-scan timeout, in seconds. Must be > 0; scan and compare run
    // with a fixed 300-second timeout and do not read this value
    "timeout_seconds": 300
  }
}
`
}

// GetMinimalConfigTemplate returns a minimal config template.
func GetMinimalConfigTemplate() string {
	return `{
  // sicilian configuration (minimal)
  "scan": {
    "include_patterns": ["**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx"],
    "exclude_patterns": ["**/node_modules/**", "**/dist/**"],
    "nonce_mode": "random"
  },
  "output": {
    "format": "text"
  }
}
`
}

// formatJSONArray formats a string slice as a JSON array with proper indentation.
func formatJSONArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	result := "[\n"
	for i, item := range items {
		result += `      "` + item + `"`
		if i < len(items)-1 {
			result += ","
		}
		result += "\n"
	}
	result += "    ]"
	return result
}
