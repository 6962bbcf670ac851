package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// HTTP server
	ListenAddr string

	// Database configuration
	DatabaseURL string

	// Community wallet receiving all payment streams
	CommunityWalletAddress string

	// Payment provider configuration; the provider is optional and streams
	// are created without verification when it is absent
	PaymentAPIURL string
	PaymentAPIKey string

	// Environment: "development", "production" or "test"
	Environment string
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from the environment, with a .env file as
// fallback for local development.
func load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config := &Config{
		ListenAddr:             getEnv("LISTEN_ADDR", ":8080"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		CommunityWalletAddress: getEnv("COMMUNITY_WALLET_ADDRESS", "0x742d35cc6634c0532925a3b844bc9e7595f6e456"),
		PaymentAPIURL:          os.Getenv("PAYMENT_API_URL"),
		PaymentAPIKey:          os.Getenv("PAYMENT_API_KEY"),
		Environment:            getEnv("ENVIRONMENT", "development"),
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
