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
	JWT    JWTConfig    `mapstructure:"jwt"`
	Log    LogConfig    `mapstructure:"log"`
	Bank   BankConfig   `mapstructure:"bank"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// Addr returns the listen address string.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
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

// BankConfig holds the engine's operating constants. All thresholds are in
// the reference currency.
type BankConfig struct {
	ReferenceCurrency    string `mapstructure:"reference_currency"`
	FreezeFloor          int64  `mapstructure:"freeze_floor"`
	PromotionCount       int    `mapstructure:"promotion_count"`
	PromotionMinAmount   int64  `mapstructure:"promotion_min_amount"`
	InitialBusinessLimit int64  `mapstructure:"initial_business_limit"`
	FixturePath          string `mapstructure:"fixture_path"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: BLE_ (Bank Ledger
// Engine). Nested keys use underscore: BLE_SERVER_PORT, BLE_JWT_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "bank-ledger")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("bank.reference_currency", "RON")
	v.SetDefault("bank.freeze_floor", 30)
	v.SetDefault("bank.promotion_count", 5)
	v.SetDefault("bank.promotion_min_amount", 300)
	v.SetDefault("bank.initial_business_limit", 500)
	v.SetDefault("bank.fixture_path", "fixtures/bank.json")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: BLE_SERVER_PORT -> server.port
	v.SetEnvPrefix("BLE")
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
