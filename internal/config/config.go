package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Generation providers.
const (
	ProviderGemini = "gemini"
	ProviderRelay  = "relay"
)

// Config is the application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Generation GenerationConfig `mapstructure:"generation"`
	Auth       AuthConfig       `mapstructure:"auth"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Images     ImageConfig      `mapstructure:"images"`
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	Env       string `mapstructure:"env"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig points at the Postgres document store.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig points at the cache and rate limit backend.
type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// GenerationConfig selects and configures the language model backend.
type GenerationConfig struct {
	Provider     string        `mapstructure:"provider"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	Model        string        `mapstructure:"model"`
	RelayURL     string        `mapstructure:"relay_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// AuthConfig verifies tokens issued by the identity service.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// RateLimitConfig limits generation requests per user.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// ImageConfig controls recipe photo uploads.
type ImageConfig struct {
	Dir          string `mapstructure:"dir"`
	Width        uint   `mapstructure:"width"`
	MaxSizeBytes int64  `mapstructure:"max_size_bytes"`
}

// Load reads configuration from an optional .env file and the environment.
// Variables use the MEALMIND_ prefix with dots replaced by underscores, for
// example MEALMIND_SERVER_PORT. A few conventional names are also accepted.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MEALMIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string][]string{
		"database.url":              {"MEALMIND_DATABASE_URL", "DATABASE_URL"},
		"redis.url":                 {"MEALMIND_REDIS_URL", "REDIS_URL"},
		"generation.gemini_api_key": {"MEALMIND_GENERATION_GEMINI_API_KEY", "GEMINI_API_KEY"},
		"auth.jwt_secret":           {"MEALMIND_AUTH_JWT_SECRET", "JWT_SECRET"},
		"server.port":               {"MEALMIND_SERVER_PORT", "PORT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "console")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("database.url", "")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("generation.provider", ProviderGemini)
	v.SetDefault("generation.gemini_api_key", "")
	v.SetDefault("generation.model", "gemini-2.5-flash")
	v.SetDefault("generation.relay_url", "http://localhost:5000/api/generate-recipe")
	v.SetDefault("generation.timeout", "45s")
	v.SetDefault("generation.cache_ttl", "24h")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests", 20)
	v.SetDefault("rate_limit.window", "1h")

	v.SetDefault("cors.allow_origins", []string{"http://localhost:5173", "http://localhost:3000"})

	v.SetDefault("images.dir", "images")
	v.SetDefault("images.width", 800)
	v.SetDefault("images.max_size_bytes", 10*1024*1024)
}

// Validate checks that required settings are present and consistent.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", c.Server.Port)
	}
	if c.Database.URL == "" {
		return errors.New("database url is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}

	switch c.Generation.Provider {
	case ProviderGemini:
		if c.Generation.GeminiAPIKey == "" {
			return errors.New("gemini api key is required for the gemini provider")
		}
	case ProviderRelay:
		if c.Generation.RelayURL == "" {
			return errors.New("relay url is required for the relay provider")
		}
	default:
		return fmt.Errorf("unknown generation provider %q", c.Generation.Provider)
	}
	if c.Generation.Timeout <= 0 {
		return errors.New("generation timeout must be positive")
	}

	if c.RateLimit.Enabled {
		if !c.Redis.Enabled {
			return errors.New("rate limiting requires redis")
		}
		if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
			return errors.New("invalid rate limit")
		}
	}

	if c.Images.Width == 0 {
		return errors.New("image width must be positive")
	}
	return nil
}

// MaskSecret hides all but the first and last four characters of a secret.
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
