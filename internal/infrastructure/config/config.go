package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	TagStoreNone     = "none"
	TagStoreDynamoDB = "dynamodb"
	TagStoreRedis    = "redis"
)

// Config is read once from the environment at startup (.env files are loaded
// by godotenv/autoload in cmd/api).
type Config struct {
	AppEnv   string
	LogLevel string
	Port     int

	Payeezy  PayeezyConfig
	TagStore TagStoreConfig
	DynamoDB DynamoDBConfig
	Redis    RedisConfig
}

type PayeezyConfig struct {
	APIKey        string
	APISecret     string
	MerchantToken string
	Environment   string
	BaseURL       string
	HTTPTimeout   time.Duration
	Mock          bool
}

type TagStoreConfig struct {
	Backend string
	TTL     time.Duration
}

// DynamoDBConfig defaults are local-friendly: DynamoDB Local does not validate
// credentials, but the AWS SDK requires them.
type DynamoDBConfig struct {
	Region            string
	Endpoint          string
	AccessKeyID       string
	SecretAccessKey   string
	TransactionsTable string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads the configuration from environment variables.
//
// Supported env vars:
//   - APP_ENV (default: production), LOG_LEVEL (default: info), PORT (default: 8080)
//   - PAYEEZY_API_KEY, PAYEEZY_API_SECRET, PAYEEZY_MERCHANT_TOKEN
//   - PAYEEZY_ENVIRONMENT (sandbox|production, default: sandbox), PAYEEZY_BASE_URL (optional)
//   - PAYEEZY_HTTP_TIMEOUT (default: 30s)
//   - PAYMENT_GATEWAY_MOCK / PAYEEZY_MOCK
//   - TAG_STORE_BACKEND (none|dynamodb|redis, default: none), TAG_STORE_TTL (default: 0, no expiry)
//   - AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, DYNAMODB_ENDPOINT, TRANSACTIONS_TABLE
//   - REDIS_ADDR (default: localhost:6379), REDIS_PASSWORD, REDIS_DB (default: 0)
func Load() (Config, error) {
	port, err := getenvInt("PORT", 8080)
	if err != nil {
		return Config{}, err
	}
	timeout, err := getenvDuration("PAYEEZY_HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	ttl, err := getenvDuration("TAG_STORE_TTL", 0)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}

	backend := strings.ToLower(getenvDefault("TAG_STORE_BACKEND", TagStoreNone))
	switch backend {
	case TagStoreNone, TagStoreDynamoDB, TagStoreRedis:
	default:
		return Config{}, fmt.Errorf("unsupported TAG_STORE_BACKEND=%s", backend)
	}

	return Config{
		AppEnv:   getenvDefault("APP_ENV", "production"),
		LogLevel: getenvDefault("LOG_LEVEL", "info"),
		Port:     port,
		Payeezy: PayeezyConfig{
			APIKey:        strings.TrimSpace(os.Getenv("PAYEEZY_API_KEY")),
			APISecret:     strings.TrimSpace(os.Getenv("PAYEEZY_API_SECRET")),
			MerchantToken: strings.TrimSpace(os.Getenv("PAYEEZY_MERCHANT_TOKEN")),
			Environment:   getenvDefault("PAYEEZY_ENVIRONMENT", "sandbox"),
			BaseURL:       strings.TrimSpace(os.Getenv("PAYEEZY_BASE_URL")),
			HTTPTimeout:   timeout,
			Mock:          isPaymentGatewayMockEnabled(),
		},
		TagStore: TagStoreConfig{
			Backend: backend,
			TTL:     ttl,
		},
		DynamoDB: DynamoDBConfig{
			Region:            getenvDefault("AWS_REGION", "us-east-1"),
			Endpoint:          os.Getenv("DYNAMODB_ENDPOINT"),
			AccessKeyID:       getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey:   getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			TransactionsTable: getenvDefault("TRANSACTIONS_TABLE", "payeezy_transactions"),
		},
		Redis: RedisConfig{
			Addr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
	}, nil
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "PAYEEZY_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	return d, nil
}
