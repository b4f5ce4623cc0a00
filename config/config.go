package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Pesapal  PesapalConfig  `mapstructure:"pesapal"`
	Frontend FrontendConfig `mapstructure:"frontend"`
	Phone    PhoneConfig    `mapstructure:"phone"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Errors   ErrorsConfig   `mapstructure:"errors"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// PesapalConfig holds gateway credentials and endpoint selection.
type PesapalConfig struct {
	Environment    string        `mapstructure:"environment"` // sandbox or production
	ConsumerKey    string        `mapstructure:"consumer_key"`
	ConsumerSecret string        `mapstructure:"consumer_secret"`
	IPNURL         string        `mapstructure:"ipn_url"` // Publicly reachable callback URL
	IPNID          string        `mapstructure:"ipn_id"`  // Pre-registered channel id (optional)
	TokenMargin    time.Duration `mapstructure:"token_margin"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// BaseURL returns the gateway base URL for the configured environment.
func (p PesapalConfig) BaseURL() string {
	if p.Environment == "sandbox" {
		return "https://cybqa.pesapal.com/pesapalv3"
	}
	return "https://pay.pesapal.com/v3"
}

type FrontendConfig struct {
	URL string `mapstructure:"url"` // Origin for CORS and payment-callback redirects
}

// CallbackURL is where PesaPal redirects the buyer after checkout.
func (f FrontendConfig) CallbackURL() string {
	return strings.TrimSuffix(f.URL, "/") + "/payment-callback"
}

// PhoneConfig defines MSISDN normalization rules. Defaults match Kenyan
// numbering: trunk prefix 0 is replaced by country code 254.
type PhoneConfig struct {
	CountryCode string `mapstructure:"country_code"`
	TrunkPrefix string `mapstructure:"trunk_prefix"`
	Region      string `mapstructure:"region"` // ISO country code on billing addresses
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// ErrorsConfig controls how much upstream detail reaches HTTP responses.
type ErrorsConfig struct {
	Verbose bool `mapstructure:"verbose"` // include raw gateway payloads in error bodies
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: IMPACT360.
// Nested keys use underscore: IMPACT360_PESAPAL_CONSUMER_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("pesapal.environment", "sandbox")
	v.SetDefault("pesapal.consumer_key", "")
	v.SetDefault("pesapal.consumer_secret", "")
	v.SetDefault("pesapal.ipn_url", "")
	v.SetDefault("pesapal.ipn_id", "")
	v.SetDefault("pesapal.token_margin", "60s")
	v.SetDefault("pesapal.request_timeout", "30s")
	v.SetDefault("frontend.url", "http://localhost:5173")
	v.SetDefault("phone.country_code", "254")
	v.SetDefault("phone.trunk_prefix", "0")
	v.SetDefault("phone.region", "KE")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "impact360_payments")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("errors.verbose", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: IMPACT360_PESAPAL_CONSUMER_KEY -> pesapal.consumer_key
	v.SetEnvPrefix("IMPACT360")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
