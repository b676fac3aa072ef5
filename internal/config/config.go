package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Checkout CheckoutConfig
	CORS     CORSConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	RequestTimeout  int
	ShutdownTimeout int
}

// StorageConfig selects where cart snapshots are kept
type StorageConfig struct {
	Driver      string // "memory" or "postgres"
	DatabaseURL string
}

type CheckoutConfig struct {
	Delay                 time.Duration
	FailureRate           float64
	DeliveryFee           decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
}

type CORSConfig struct {
	AllowedOrigins []string
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	deliveryFee, err := getEnvAsDecimal("DELIVERY_FEE", "3.99")
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	threshold, err := getEnvAsDecimal("FREE_DELIVERY_THRESHOLD", "25")
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			RequestTimeout:  getEnvAsInt("REQUEST_TIMEOUT", 10),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
			DatabaseURL: getEnv("DATABASE_URL", ""),
		},
		Checkout: CheckoutConfig{
			Delay:                 time.Duration(getEnvAsInt("CHECKOUT_DELAY_MS", 2000)) * time.Millisecond,
			FailureRate:           getEnvAsFloat("CHECKOUT_FAILURE_RATE", 0),
			DeliveryFee:           deliveryFee,
			FreeDeliveryThreshold: threshold,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (must be memory or postgres)", c.Storage.Driver)
	}

	if c.Server.RequestTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT and WRITE_TIMEOUT must be positive")
	}

	if c.Checkout.Delay < 0 {
		return fmt.Errorf("CHECKOUT_DELAY_MS must not be negative")
	}
	// a checkout must be able to answer before the response deadline
	deadline := time.Duration(min(c.Server.WriteTimeout, c.Server.RequestTimeout)) * time.Second
	if c.Checkout.Delay >= deadline {
		return fmt.Errorf("CHECKOUT_DELAY_MS (%v) must be shorter than WRITE_TIMEOUT and REQUEST_TIMEOUT (%v)", c.Checkout.Delay, deadline)
	}
	if c.Checkout.FailureRate < 0 || c.Checkout.FailureRate > 1 {
		return fmt.Errorf("CHECKOUT_FAILURE_RATE must be between 0 and 1")
	}
	if c.Checkout.DeliveryFee.IsNegative() || c.Checkout.FreeDeliveryThreshold.IsNegative() {
		return fmt.Errorf("delivery fee and free delivery threshold must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDecimal(key, defaultValue string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(getEnv(key, defaultValue))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
