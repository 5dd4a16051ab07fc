package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the service configuration
type Config struct {
	HTTPPort     string        `yaml:"httpPort"`
	RedisURI     string        `yaml:"redisUri"`
	MoodCacheTTL time.Duration `yaml:"moodCacheTtl"`
	RateLimit    int           `yaml:"rateLimit"` // inference requests per second
	LogLevel     string        `yaml:"logLevel"`
	LogFormat    string        `yaml:"logFormat"`
	CORS         CORSConfig    `yaml:"cors"`
	AI           AIConfig      `yaml:"ai"`
}

// CORSConfig controls the CORS response headers
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowedOrigins"`
	AllowedMethods string `yaml:"allowedMethods"`
	AllowedHeaders string `yaml:"allowedHeaders"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		HTTPPort:     "5000",
		MoodCacheTTL: 24 * time.Hour,
		RateLimit:    20,
		LogLevel:     "info",
		LogFormat:    "text",
		CORS: CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET, POST, OPTIONS",
			AllowedHeaders: "Content-Type, Authorization, X-Request-ID",
		},
		AI: DefaultAIConfig(),
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in that order of precedence (environment wins).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config file %s", path)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTPPort = getEnv("PORT", c.HTTPPort)
	c.RedisURI = getEnv("REDIS_URI", c.RedisURI)
	c.MoodCacheTTL = getEnvDuration("MOOD_CACHE_TTL", c.MoodCacheTTL)
	c.RateLimit = getEnvInt("RATE_LIMIT", c.RateLimit)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.CORS.AllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.CORS.AllowedMethods = getEnv("CORS_ALLOWED_METHODS", c.CORS.AllowedMethods)
	c.CORS.AllowedHeaders = getEnv("CORS_ALLOWED_HEADERS", c.CORS.AllowedHeaders)
	c.AI.applyEnv()
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.HTTPPort); err != nil {
		return errors.Errorf("invalid port %q", c.HTTPPort)
	}
	if c.RateLimit < 0 {
		return errors.Errorf("rate limit must not be negative, got %d", c.RateLimit)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return c.AI.Validate()
}

// RedisAddr strips the redis:// scheme the way docker-compose URIs are written
func (c *Config) RedisAddr() string {
	return strings.TrimPrefix(c.RedisURI, "redis://")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
