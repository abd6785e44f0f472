package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	LNbits LNbitsConfig `mapstructure:"lnbits"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Feed   FeedConfig   `mapstructure:"feed"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// LNbitsConfig describes the upstream custodial wallet ledger.
type LNbitsConfig struct {
	NodeURL  string        `mapstructure:"node_url"`
	Username string        `mapstructure:"username"` // operator credential for bearer auth
	Password string        `mapstructure:"password"`
	AdminKey string        `mapstructure:"admin_key"` // operator X-Api-Key for invoice payment
	Timeout  time.Duration `mapstructure:"timeout"`
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

// CacheConfig selects the session cache backend.
type CacheConfig struct {
	Backend string `mapstructure:"backend"` // redis or memory
	Name    string `mapstructure:"name"`    // cache name the feed entries are keyed by
}

// FeedConfig tunes the transfer reconciliation engine.
type FeedConfig struct {
	SourceWallets      []string `mapstructure:"source_wallets"`      // wallet-name vocabulary for the source role
	DestinationWallets []string `mapstructure:"destination_wallets"` // wallet-name vocabulary for the destination role
	ExcludeMemo        string   `mapstructure:"exclude_memo"`        // system-transaction memo substring
	InternalPrefix     string   `mapstructure:"internal_prefix"`     // checking-id prefix on internal transfer rows
	MaxRecords         int      `mapstructure:"max_records"`
	PageSize           int      `mapstructure:"page_size"`
	FetchConcurrency   int      `mapstructure:"fetch_concurrency"` // parallel upstream fetches per pass
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: ZAP_.
// Nested keys use underscore: ZAP_LNBITS_NODE_URL, ZAP_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("lnbits.node_url", "http://localhost:5000")
	v.SetDefault("lnbits.username", "")
	v.SetDefault("lnbits.password", "")
	v.SetDefault("lnbits.admin_key", "")
	v.SetDefault("lnbits.timeout", "30s")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.name", "zap-feed")
	v.SetDefault("feed.source_wallets", []string{"allowance"})
	v.SetDefault("feed.destination_wallets", []string{"private"})
	v.SetDefault("feed.exclude_memo", "Weekly Allowance cleared")
	v.SetDefault("feed.internal_prefix", "internal_")
	v.SetDefault("feed.max_records", 100)
	v.SetDefault("feed.page_size", 10)
	v.SetDefault("feed.fetch_concurrency", 8)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "zap-feed-service")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: ZAP_LNBITS_NODE_URL -> lnbits.node_url
	v.SetEnvPrefix("ZAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
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
