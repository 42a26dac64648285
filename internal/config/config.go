package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr          string
	StoreDomain       string
	StorefrontToken   string
	APIVersion        string
	AllowedOrigins    []string
	ShutdownTimeout   time.Duration
	HTTPClientTimeout time.Duration
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:          envOrDefault("HTTP_ADDR", ":8080"),
		StoreDomain:       envOrDefault("SHOPIFY_STORE_DOMAIN", ""),
		StorefrontToken:   envOrDefault("SHOPIFY_STOREFRONT_ACCESS_TOKEN", ""),
		APIVersion:        envOrDefault("SHOPIFY_API_VERSION", "2023-10"),
		AllowedOrigins:    envList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		ShutdownTimeout:   envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		HTTPClientTimeout: envDuration("HTTP_CLIENT_TIMEOUT_SECONDS", 10*time.Second),
	}
}

// Validate reports the configuration errors an operator must fix before the
// storefront can reach the commerce platform.
func (c Config) Validate() error {
	if strings.TrimSpace(c.StoreDomain) == "" {
		return errors.New("SHOPIFY_STORE_DOMAIN is required")
	}
	if strings.TrimSpace(c.StorefrontToken) == "" {
		return errors.New("SHOPIFY_STOREFRONT_ACCESS_TOKEN is required")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
