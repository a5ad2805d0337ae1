package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var Config *ServerConfig

// ServerConfig is a struct that contains configuration values for the server.
type ServerConfig struct {
	// AllowedOrigins is a list of URLs that the server will accept requests from.
	AllowedOrigins []string `yaml:"allowedOrigins"`
	// SessionCookieName is the name to use for the session cookie.
	SessionCookieName string `yaml:"sessionCookieName"`
	// SessionCookieExpiration is the amount of time a session cookie is valid. Max 2 weeks.
	SessionCookieExpiration time.Duration `yaml:"sessionCookieExpiration"`
	// IsHTTPS marks the session cookie Secure and SameSite=None.
	IsHTTPS bool `yaml:"isHttps"`
	// Port is the port the server should run on.
	Port int `yaml:"port"`

	// FirebaseCredentialsFile is the service account file. If empty, the server runs against an in-memory
	// store seeded with the placeholder catalog.
	FirebaseCredentialsFile string `yaml:"firebaseCredentialsFile"`
	// SeedOnStart writes the placeholder catalog to the store when the server starts.
	SeedOnStart bool `yaml:"seedOnStart"`

	// RedisAddr enables the Redis cart and the Redis diagnostics publisher. Empty means in-memory carts.
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDb"`
	// CartTTL is how long an untouched cart is kept. Zero keeps it forever.
	CartTTL time.Duration `yaml:"cartTtl"`
	// DiagnosticsChannel is the Redis channel failed consistency writes are published to.
	DiagnosticsChannel string `yaml:"diagnosticsChannel"`

	TextGen TextGenConfig `yaml:"textGen"`
}

// TextGenConfig configures the course description generator.
type TextGenConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	APIKey  string        `yaml:"apiKey"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		AllowedOrigins:          []string{"http://localhost:3000", "http://localhost:9002"},
		SessionCookieName:       "edemy-session",
		SessionCookieExpiration: time.Hour * 24 * 5,
		Port:                    8080,
		CartTTL:                 time.Hour * 24 * 30,
		DiagnosticsChannel:      "edemy-diagnostics",
		TextGen: TextGenConfig{
			BaseURL: "https://api.openai.com",
			Model:   "gpt-4o-mini",
			Timeout: 30 * time.Second,
		},
	}
}

// Load builds the configuration from the defaults, the YAML file at path (if path is non-empty), and then
// environment overrides, in that order.
func Load(path string) (*ServerConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	} else {
		log.Println("🙂️ No configuration file provided. Using the default configuration.")
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *ServerConfig, lookup func(string) (string, bool)) error {
	envStrings := map[string]*string{
		"EDEMY_FIREBASE_CREDENTIALS": &cfg.FirebaseCredentialsFile,
		"EDEMY_REDIS_ADDR":           &cfg.RedisAddr,
		"EDEMY_REDIS_PASSWORD":       &cfg.RedisPassword,
		"EDEMY_OPENAI_API_KEY":       &cfg.TextGen.APIKey,
		"EDEMY_OPENAI_BASE_URL":      &cfg.TextGen.BaseURL,
		"EDEMY_OPENAI_MODEL":         &cfg.TextGen.Model,
	}
	for key, field := range envStrings {
		if v, ok := lookup(key); ok {
			*field = v
		}
	}

	if v, ok := lookup("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v, ok := lookup("EDEMY_HTTPS"); ok {
		isHTTPS, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid EDEMY_HTTPS %q: %w", v, err)
		}
		cfg.IsHTTPS = isHTTPS
	}
	return nil
}

func (c *ServerConfig) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.SessionCookieName == "" {
		return fmt.Errorf("session cookie name must not be empty")
	}
	// Firebase rejects session cookies that live longer than two weeks.
	if c.SessionCookieExpiration < 5*time.Minute || c.SessionCookieExpiration > 14*24*time.Hour {
		return fmt.Errorf("session cookie expiration %v must be between 5 minutes and 2 weeks", c.SessionCookieExpiration)
	}
	return nil
}

func init() {
	Config = DefaultConfig()
}
