// Package config loads process configuration from the environment. A .env
// file in the working directory is honored before the environment is read.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultListenAddr = ":3000"
	DefaultAPIVersion = "2024-10"
	DefaultCacheTTL   = 5 * time.Minute
)

type Config struct {
	// StoreDomain is the store hostname, e.g. "my-store.myshopify.com".
	StoreDomain string
	// AccessToken is the Admin API access token sent on every vendor call.
	AccessToken string
	// ListenAddr is the inbound MCP HTTP listen address.
	ListenAddr string
	// MetricsAddr enables the metrics/health server when non-empty.
	MetricsAddr string
	// APIVersion is the Admin API version path segment.
	APIVersion string
	// CacheTTL bounds the age of the cached product listing.
	CacheTTL time.Duration
}

// Load reads configuration from the environment. It never fails; missing
// required values are reported by Validate so the caller controls whether
// that is fatal (serve) or advisory (validate).
func Load() Config {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("apiVersion", DefaultAPIVersion)
	v.SetDefault("cacheTTL", DefaultCacheTTL)

	_ = v.BindEnv("storeDomain", "SHOPIFY_STORE_DOMAIN")
	_ = v.BindEnv("accessToken", "SHOPIFY_ACCESS_TOKEN")
	_ = v.BindEnv("listenAddr", "SHOPMCP_LISTEN_ADDR")
	_ = v.BindEnv("metricsAddr", "SHOPMCP_METRICS_ADDR")
	_ = v.BindEnv("apiVersion", "SHOPMCP_API_VERSION")
	_ = v.BindEnv("cacheTTL", "SHOPMCP_CACHE_TTL")
	_ = v.BindEnv("port", "PORT")

	cfg := Config{
		StoreDomain: normalizeDomain(v.GetString("storeDomain")),
		AccessToken: strings.TrimSpace(v.GetString("accessToken")),
		ListenAddr:  v.GetString("listenAddr"),
		MetricsAddr: v.GetString("metricsAddr"),
		APIVersion:  v.GetString("apiVersion"),
		CacheTTL:    v.GetDuration("cacheTTL"),
	}

	// A bare PORT is honored for parity with the historical deployment, but
	// an explicit listen address wins.
	if cfg.ListenAddr == "" {
		if port := v.GetString("port"); port != "" {
			cfg.ListenAddr = ":" + port
		} else {
			cfg.ListenAddr = DefaultListenAddr
		}
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return cfg
}

func (c Config) Validate() error {
	var errs []error
	if c.StoreDomain == "" {
		errs = append(errs, errors.New("SHOPIFY_STORE_DOMAIN is required"))
	}
	if c.AccessToken == "" {
		errs = append(errs, errors.New("SHOPIFY_ACCESS_TOKEN is required"))
	}
	if c.APIVersion == "" {
		errs = append(errs, errors.New("api version must not be empty"))
	}
	if strings.Contains(c.StoreDomain, "/") {
		errs = append(errs, fmt.Errorf("store domain %q must be a bare hostname", c.StoreDomain))
	}
	return errors.Join(errs...)
}

// HasCredentials reports whether both vendor credentials are present.
// Handlers check this before issuing any upstream call.
func (c Config) HasCredentials() bool {
	return c.StoreDomain != "" && c.AccessToken != ""
}

func normalizeDomain(domain string) string {
	d := strings.TrimSpace(domain)
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	return strings.TrimSuffix(d, "/")
}
