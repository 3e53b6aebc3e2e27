package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Turn14 configuration
	Turn14BaseURL string `json:"turn14_base_url"`
	Turn14Client  string `json:"turn14_client"`
	Turn14Secret  string `json:"turn14_secret"`

	// WooCommerce configuration
	WcBaseURL string `json:"wc_base_url"`
	WcClient  string `json:"wc_client"`
	WcSecret  string `json:"wc_secret"`

	// Sync configuration
	BrandID   int `json:"brand_id"`
	BatchSize int `json:"batch_size"`

	// Schedule periods
	InventoryInterval time.Duration `json:"inventory_interval"`
	PricingInterval   time.Duration `json:"pricing_interval"`
	StaleInterval     time.Duration `json:"stale_interval"`
	ResyncInterval    time.Duration `json:"resync_interval"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8083"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	turn14Client := os.Getenv("TURN14_CLIENT")
	if turn14Client == "" {
		return fmt.Errorf("TURN14_CLIENT environment variable is required")
	}
	turn14Secret := os.Getenv("TURN14_SECRET")
	if turn14Secret == "" {
		return fmt.Errorf("TURN14_SECRET environment variable is required")
	}

	wcClient := os.Getenv("WC_CLIENT")
	if wcClient == "" {
		return fmt.Errorf("WC_CLIENT environment variable is required")
	}
	wcSecret := os.Getenv("WC_SECRET")
	if wcSecret == "" {
		return fmt.Errorf("WC_SECRET environment variable is required")
	}

	brandID, err := strconv.Atoi(getEnvOrDefault("BRAND_ID", "0"))
	if err != nil {
		return fmt.Errorf("invalid BRAND_ID: %w", err)
	}

	batchSize, err := strconv.Atoi(getEnvOrDefault("BATCH_SIZE", "50"))
	if err != nil {
		return fmt.Errorf("invalid BATCH_SIZE: %w", err)
	}
	if batchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive, got %d", batchSize)
	}

	inventoryInterval, err := time.ParseDuration(getEnvOrDefault("INVENTORY_INTERVAL", "1h"))
	if err != nil {
		return fmt.Errorf("invalid INVENTORY_INTERVAL: %w", err)
	}

	pricingInterval, err := time.ParseDuration(getEnvOrDefault("PRICING_INTERVAL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid PRICING_INTERVAL: %w", err)
	}

	staleInterval, err := time.ParseDuration(getEnvOrDefault("STALE_INTERVAL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid STALE_INTERVAL: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// Turn14 configuration
		Turn14BaseURL: getEnvOrDefault("TURN14_BASE_URL", "https://apitest.turn14.com/v1"),
		Turn14Client:  turn14Client,
		Turn14Secret:  turn14Secret,

		// WooCommerce configuration
		WcBaseURL: getEnvOrDefault("WC_BASE_URL", "http://localhost:8080"),
		WcClient:  wcClient,
		WcSecret:  wcSecret,

		// Sync configuration
		BrandID:   brandID,
		BatchSize: batchSize,

		// Schedule periods. The resync interval approximates "monthly" with the
		// largest 32-bit millisecond timer (~24.8 days).
		InventoryInterval: inventoryInterval,
		PricingInterval:   pricingInterval,
		StaleInterval:     staleInterval,
		ResyncInterval:    time.Duration(math.MaxInt32) * time.Millisecond,

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
