package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// RateLimit is the number of requests allowed per client IP per minute.
	RateLimit int

	// SupportedCurrencies lists the ISO codes the engine accepts on accounts,
	// lines, and rates.
	SupportedCurrencies []string

	// ReportingCurrency is the currency journals are balanced in when a
	// journal does not name its own.
	ReportingCurrency string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	viper.SetDefault("SUPPORTED_CURRENCIES", "USD,PKR")
	viper.SetDefault("REPORTING_CURRENCY", "PKR")

	// Environment variables override .env file values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.RateLimit = viper.GetInt("RATE_LIMIT_PER_MINUTE")
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 120
	}

	for _, code := range strings.Split(viper.GetString("SUPPORTED_CURRENCIES"), ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			cfg.SupportedCurrencies = append(cfg.SupportedCurrencies, code)
		}
	}
	if len(cfg.SupportedCurrencies) == 0 {
		cfg.SupportedCurrencies = []string{"USD", "PKR"}
		log.Println("Warning: SUPPORTED_CURRENCIES empty. Defaulting to USD,PKR.")
	}

	cfg.ReportingCurrency = strings.ToUpper(strings.TrimSpace(viper.GetString("REPORTING_CURRENCY")))
	if cfg.ReportingCurrency == "" {
		cfg.ReportingCurrency = "PKR"
		log.Printf("Warning: REPORTING_CURRENCY not set. Defaulting to %s.\n", cfg.ReportingCurrency)
	}

	return cfg, nil
}
