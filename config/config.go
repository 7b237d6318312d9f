package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"host=localhost user=postgres password=postgres dbname=commerce port=5432 sslmode=disable"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// PaymentRetryWindow bounds how long after creation a PENDING order can
	// still start payment attempts. Zero disables the bound.
	PaymentRetryWindow time.Duration `envconfig:"PAYMENT_RETRY_WINDOW" default:"30m"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Brokers() []string {
	return strings.Split(c.KafkaBrokers, ",")
}
