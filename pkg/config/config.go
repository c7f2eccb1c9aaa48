// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process-wide settings read once at startup. The shop
// credentials are immutable for the process lifetime; handlers receive the
// authenticated client built from them, never the raw values.
type Config struct {
	Env      string
	HTTPAddr string

	// Shopify Admin API
	ShopURL     string // e.g. my-store.myshopify.com
	APIVersion  string
	AccessToken string // private-app token auth
	APIKey      string // legacy key+password auth
	Password    string

	UpstreamTimeout time.Duration
}

// Load reads configuration from the environment (a .env file is honored in
// dev). SHOP_URL and exactly one authentication method are required.
func Load() (Config, error) {
	_ = godotenv.Load()
	cfg := Config{
		Env:             env("BRIDGE_ENV", "dev"),
		HTTPAddr:        env("BRIDGE_HTTP_ADDR", ":8080"),
		ShopURL:         env("SHOP_URL", ""),
		APIVersion:      env("API_VERSION", "2023-01"),
		AccessToken:     env("ACCESS_TOKEN", ""),
		APIKey:          env("API_KEY", ""),
		Password:        env("PASSWORD", ""),
		UpstreamTimeout: envDur("UPSTREAM_TIMEOUT_SEC", 10) * time.Second,
	}
	if cfg.ShopURL == "" {
		return cfg, errors.New("SHOP_URL environment variable is required")
	}
	if cfg.AccessToken == "" && (cfg.APIKey == "" || cfg.Password == "") {
		return cfg, errors.New("either ACCESS_TOKEN or both API_KEY and PASSWORD must be provided")
	}
	return cfg, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDur(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		i, _ := strconv.Atoi(v)
		return time.Duration(i)
	}
	return time.Duration(def)
}
