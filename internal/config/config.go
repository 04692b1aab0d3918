package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	NATS     NATSConfig
	Payment  PaymentConfig
	Log      LogConfig
}

// ServerConfig covers the operational HTTP listener only; the order API
// itself is served over NATS.
type ServerConfig struct {
	HealthPort int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type NATSConfig struct {
	URL            string
	QueueGroup     string
	RequestTimeout time.Duration
}

type PaymentConfig struct {
	Currency string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	// A local .env is convenient in development; absence is not an error.
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("HEALTH_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "orders")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "orders")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("NATS_URL", "nats://localhost:4222")
	viper.SetDefault("NATS_QUEUE_GROUP", "orders")
	viper.SetDefault("NATS_REQUEST_TIMEOUT", "5s")
	viper.SetDefault("PAYMENT_CURRENCY", "usd")
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	requestTimeout, err := time.ParseDuration(viper.GetString("NATS_REQUEST_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			HealthPort: viper.GetInt("HEALTH_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		NATS: NATSConfig{
			URL:            viper.GetString("NATS_URL"),
			QueueGroup:     viper.GetString("NATS_QUEUE_GROUP"),
			RequestTimeout: requestTimeout,
		},
		Payment: PaymentConfig{
			Currency: viper.GetString("PAYMENT_CURRENCY"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
