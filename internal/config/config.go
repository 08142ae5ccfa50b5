package config

type Config struct {
	ConfigVersion int           `yaml:"configVersion"`
	Rules         []RuleSource  `yaml:"rules"`
	Languages     string        `yaml:"languages"`
	Logging       LoggingConfig `yaml:"logging"`
	Server        ServerConfig  `yaml:"server"`
	Metrics       MetricsConfig `yaml:"metrics"`

	baseDir string `yaml:"-"`
}

// RuleSource is a rule directory or a single rule file, plus the tag stamped
// on every rule loaded from it.
type RuleSource struct {
	Path string `yaml:"path"`
	Tag  string `yaml:"tag"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Listen    string          `yaml:"listen"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig limits API requests per client IP.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

const (
	CurrentVersion = 1
	DefaultListen  = "127.0.0.1:8080"
)

func (c *Config) ResolvePath(path string) string {
	return c.resolvePath(path)
}

// ListenAddr returns the configured listen address or DefaultListen.
func (c *Config) ListenAddr() string {
	if c.Server.Listen == "" {
		return DefaultListen
	}
	return c.Server.Listen
}
