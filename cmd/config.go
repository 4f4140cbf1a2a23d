package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	Storage  string `env:"STORAGE" envDefault:"memory"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"fulfillment"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	KafkaHost              string `env:"KAFKA_HOST"`
	KafkaConsumerGroup     string `env:"KAFKA_CONSUMER_GROUP" envDefault:"fulfillment"`
	KafkaOrderPlacedTopic  string `env:"KAFKA_ORDER_PLACED_TOPIC" envDefault:"order-placed"`
	KafkaOrderChangedTopic string `env:"KAFKA_ORDER_CHANGED_TOPIC" envDefault:"order-changed"`

	CourierGatewayURL     string `env:"COURIER_GATEWAY_URL"`
	CourierGatewayRetries int    `env:"COURIER_GATEWAY_RETRIES" envDefault:"3"`

	OtelExporterURL string  `env:"OTEL_EXPORTER_URL"`
	OtelSampleRate  float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1"`
	ServiceName     string  `env:"SERVICE_NAME" envDefault:"fulfillment"`
	Environment     string  `env:"ENVIRONMENT" envDefault:"local"`

	OutboxSchedule string `env:"OUTBOX_SCHEDULE" envDefault:"*/5 * * * * *"`
}

// LoadConfig reads the process environment, after loading envFile when it
// exists. Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		errs = append(errs, fmt.Errorf("STORAGE must be %s or %s, got %q", StorageMemory, StoragePostgres, c.Storage))
	}
	if c.CourierGatewayRetries < 0 {
		errs = append(errs, errors.New("COURIER_GATEWAY_RETRIES must not be negative"))
	}
	if c.OtelSampleRate < 0 || c.OtelSampleRate > 1 {
		errs = append(errs, errors.New("OTEL_SAMPLE_RATE must be within [0, 1]"))
	}
	return errors.Join(errs...)
}

// DatabaseURL is the postgres:// form used by migrations and GORM.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

// KafkaBrokers splits KAFKA_HOST on commas; empty means Kafka is off.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
