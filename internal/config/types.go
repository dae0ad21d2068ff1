package config

// LogFormat selects the zap encoder.
type LogFormat string

const (
	LogConsole LogFormat = "console"
	LogJSON    LogFormat = "json"
)

// Config is the top-level folio configuration, corresponding to .folio.yml.
type Config struct {
	Title          string          `yaml:"title" koanf:"title"`
	DataFile       string          `yaml:"data_file" koanf:"data_file"`
	PostsDir       string          `yaml:"posts_dir" koanf:"posts_dir"`
	PostsIndex     string          `yaml:"posts_index" koanf:"posts_index"`
	StaticDir      string          `yaml:"static_dir" koanf:"static_dir"`
	OutputDir      string          `yaml:"output_dir" koanf:"output_dir"`
	BasePath       string          `yaml:"base_path" koanf:"base_path"`
	Strict         bool            `yaml:"strict" koanf:"strict"`
	Exclude        []string        `yaml:"exclude" koanf:"exclude"`
	MaxConcurrency int             `yaml:"max_concurrency" koanf:"max_concurrency"`
	CacheFile      string          `yaml:"cache_file" koanf:"cache_file"`
	HeaderOffset   int             `yaml:"header_offset" koanf:"header_offset"`
	Highlight      HighlightConfig `yaml:"highlight" koanf:"highlight"`
	Serve          ServeConfig     `yaml:"serve" koanf:"serve"`
	Log            LogConfig       `yaml:"log" koanf:"log"`
}

// HighlightConfig controls syntax highlighting of fenced code in posts.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Style   string `yaml:"style" koanf:"style"`
}

// ServeConfig holds settings for the local preview server.
type ServeConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	LiveReload      bool `yaml:"live_reload" koanf:"live_reload"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string    `yaml:"level" koanf:"level"`
	Format LogFormat `yaml:"format" koanf:"format"`
}
