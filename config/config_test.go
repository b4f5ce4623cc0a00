package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "sandbox", cfg.Pesapal.Environment)
	assert.Equal(t, 60*time.Second, cfg.Pesapal.TokenMargin)
	assert.Equal(t, 30*time.Second, cfg.Pesapal.RequestTimeout)
	assert.Equal(t, "254", cfg.Phone.CountryCode)
	assert.Equal(t, "0", cfg.Phone.TrunkPrefix)
	assert.Equal(t, "KE", cfg.Phone.Region)
	assert.Equal(t, "impact360_payments", cfg.Database.DBName)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Errors.Verbose)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("IMPACT360_PESAPAL_CONSUMER_KEY", "key-from-env")
	t.Setenv("IMPACT360_PESAPAL_ENVIRONMENT", "production")
	t.Setenv("IMPACT360_SERVER_PORT", "8080")
	t.Setenv("IMPACT360_ERRORS_VERBOSE", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "key-from-env", cfg.Pesapal.ConsumerKey)
	assert.Equal(t, "production", cfg.Pesapal.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Errors.Verbose)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 4000
pesapal:
  environment: production
  ipn_url: https://impact360.example/pesapal-ipn
frontend:
  url: https://impact360.example
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Pesapal.Environment)
	assert.Equal(t, "https://impact360.example/pesapal-ipn", cfg.Pesapal.IPNURL)
	// Unset keys keep their defaults.
	assert.Equal(t, "254", cfg.Phone.CountryCode)
}

func TestPesapalConfig_BaseURL(t *testing.T) {
	assert.Equal(t, "https://cybqa.pesapal.com/pesapalv3", PesapalConfig{Environment: "sandbox"}.BaseURL())
	assert.Equal(t, "https://pay.pesapal.com/v3", PesapalConfig{Environment: "production"}.BaseURL())
}

func TestFrontendConfig_CallbackURL(t *testing.T) {
	assert.Equal(t, "https://impact360.example/payment-callback",
		FrontendConfig{URL: "https://impact360.example"}.CallbackURL())
	assert.Equal(t, "https://impact360.example/payment-callback",
		FrontendConfig{URL: "https://impact360.example/"}.CallbackURL())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret",
		DBName: "payments", SSLMode: "require",
	}
	assert.Equal(t, "postgres://app:secret@db:5432/payments?sslmode=require", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
