package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_DOMAIN", "demo.myshopify.com")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
	t.Setenv("PORT", "")
	t.Setenv("SHOPMCP_LISTEN_ADDR", "")

	cfg := Load()
	require.Equal(t, "demo.myshopify.com", cfg.StoreDomain)
	require.Equal(t, "shpat_test", cfg.AccessToken)
	require.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	require.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.NoError(t, cfg.Validate())
}

func TestLoadStripsScheme(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_DOMAIN", "https://demo.myshopify.com/")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")

	cfg := Load()
	require.Equal(t, "demo.myshopify.com", cfg.StoreDomain)
	require.NoError(t, cfg.Validate())
}

func TestLoadPortFallback(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_DOMAIN", "demo.myshopify.com")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
	t.Setenv("PORT", "8080")

	cfg := Load()
	require.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadExplicitAddrWinsOverPort(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_DOMAIN", "demo.myshopify.com")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
	t.Setenv("PORT", "8080")
	t.Setenv("SHOPMCP_LISTEN_ADDR", ":9000")

	cfg := Load()
	require.Equal(t, ":9000", cfg.ListenAddr)
}

func TestValidateMissingRequired(t *testing.T) {
	cfg := Config{APIVersion: DefaultAPIVersion}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "SHOPIFY_STORE_DOMAIN")
	require.Contains(t, err.Error(), "SHOPIFY_ACCESS_TOKEN")
	require.False(t, cfg.HasCredentials())
}
