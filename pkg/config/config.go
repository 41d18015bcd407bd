package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int
	// GRPCAddr is where the gateway dials the API process.
	GRPCAddr string

	Postgres Postgres

	SessionKey   string
	CookieSecure bool

	RabbitMQURL     string
	RabbitMQQueue   string
	ChannelPoolSize int

	CheckoutMaxConcurrent int

	// StorefrontURL and StorefrontHome are read by the CLI only.
	StorefrontURL  string
	StorefrontHome string
}

type Postgres struct {
	Host string
	Port int
	User string
	Pass string
	DB   string
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 8081),
		GRPCAddr: getEnv("GRPC_ADDR", "localhost:8081"),
		Postgres: Postgres{
			Host: getEnv("POSTGRES_HOST", "localhost"),
			Port: getEnvInt("POSTGRES_PORT", 5432),
			User: getEnv("POSTGRES_USER", "shopping"),
			Pass: getEnv("POSTGRES_PASSWORD", "shoppingpassword"),
			DB:   getEnv("POSTGRES_DB", "shopping_db"),
		},
		SessionKey:            getEnv("SESSION_KEY", ""),
		CookieSecure:          getEnvBool("COOKIE_SECURE", false),
		RabbitMQURL:           getEnv("RABBITMQ_URL", ""),
		RabbitMQQueue:         getEnv("RABBITMQ_QUEUE", "order_events"),
		ChannelPoolSize:       getEnvInt("CHANNEL_POOL_SIZE", 10),
		CheckoutMaxConcurrent: getEnvInt("CHECKOUT_MAX_CONCURRENT", 10),
		StorefrontURL:         getEnv("STOREFRONT_URL", "http://localhost:8080"),
		StorefrontHome:        getEnv("STOREFRONT_HOME", defaultHome()),
	}
}

func defaultHome() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(dir, "storefront")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
