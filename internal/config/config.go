package config

import (
	"os"
	"strconv"
)

// Config carries every runtime setting, read once from the environment
// at process start. A .env file is honored via godotenv/autoload in main.
type Config struct {
	Port        string
	AdminSecret string

	// StorageBackend selects the AuctionStore: "memory" (default) or "dynamodb".
	StorageBackend     string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoEndpoint     string
	StatesTable        string
	BidsTable          string

	// SMTP settings; an empty host falls back to the log-only mailer.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	// Per-client rate limit on the public bid route.
	BidRatePerMinute int
	BidRateBurst     int
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:        getenvDefault("PORT", "8080"),
		AdminSecret: os.Getenv("ADMIN_SECRET"),

		StorageBackend:     getenvDefault("STORAGE_BACKEND", "memory"),
		AWSRegion:          getenvDefault("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoEndpoint:     os.Getenv("DYNAMODB_ENDPOINT"),
		StatesTable:        getenvDefault("AUCTION_STATES_TABLE", "auction_states"),
		BidsTable:          getenvDefault("AUCTION_BIDS_TABLE", "auction_bids"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getenvDefault("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getenvDefault("MAIL_FROM", "auctions@example.com"),

		BidRatePerMinute: getenvIntDefault("BID_RATE_PER_MINUTE", 120),
		BidRateBurst:     getenvIntDefault("BID_RATE_BURST", 20),
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvIntDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
