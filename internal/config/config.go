package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the server looks for its YAML config unless
// -config is given.
const DefaultConfigPath = "config.yaml"

// AppConfig holds runtime startup configuration loaded from YAML with
// environment fallbacks.
type AppConfig struct {
	Port           int       `yaml:"port"`
	Env            string    `yaml:"env"` // "development" | "production"
	JWTSecret      string    `yaml:"jwt_secret"`
	RedisURL       string    `yaml:"redis_url"`
	AllowedOrigins []string  `yaml:"allowed_origins"`
	SetupSecret    string    `yaml:"setup_secret"`
	Admin          SeedAdmin `yaml:"admin"`
}

// SeedAdmin optionally bootstraps an admin account at startup so a fresh
// deployment is usable without the promote endpoint.
type SeedAdmin struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
}

// Load reads the YAML config at path, falling back to environment variables
// and defaults. A missing file is not an error; env-only deployments are
// supported.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		Port: 5000,
		Env:  "development",
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return c.Env != "production"
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("INKPRESS_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("INKPRESS_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("INKPRESS_ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v := os.Getenv("INKPRESS_SETUP_SECRET"); v != "" {
		cfg.SetupSecret = v
	}
	if v := os.Getenv("INKPRESS_ADMIN_USERNAME"); v != "" {
		cfg.Admin.Username = v
	}
	if v := os.Getenv("INKPRESS_ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
	if v := os.Getenv("INKPRESS_ADMIN_EMAIL"); v != "" {
		cfg.Admin.Email = v
	}
}
