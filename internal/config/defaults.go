package config

// DefaultExcludes are glob patterns skipped when copying static assets.
var DefaultExcludes = []string{
	".git/**",
	"**/.DS_Store",
	"**/*.swp",
	"**/*~",
	"node_modules/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:          "Academic Portfolio",
		DataFile:       "data/info.json",
		PostsDir:       "posts",
		PostsIndex:     "posts/index.json",
		StaticDir:      "static",
		OutputDir:      "public",
		Strict:         true,
		Exclude:        append([]string(nil), DefaultExcludes...),
		MaxConcurrency: 4,
		CacheFile:      ".folio/cache.db",
		HeaderOffset:   50,
		Highlight: HighlightConfig{
			Enabled: false,
			Style:   "github",
		},
		Serve: ServeConfig{
			Port:       8080,
			LiveReload: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogConsole,
		},
	}
}
