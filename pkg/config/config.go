package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // .env file is optional

	return env.Parse(cfg)
}

// Config holds the configuration for the matching service.
type Config struct {
	Pair       string `env:"PAIR,required"`        // Trading pair, e.g., SOL/USDC
	BaseAsset  string `env:"BASE_ASSET,required"`  // Asset identifier of the base leg
	QuoteAsset string `env:"QUOTE_ASSET,required"` // Asset identifier of the quote leg

	// Pooled custody accounts the book settles through.
	BaseVault  string `env:"BASE_VAULT" envDefault:"vault:base"`
	QuoteVault string `env:"QUOTE_VAULT" envDefault:"vault:quote"`

	KafkaConfig    `envPrefix:"KAFKA_"`
	RedisConfig    `envPrefix:"REDIS_"`
	SnapshotConfig `envPrefix:"SNAPSHOT_"`
}

// KafkaConfig holds the configuration for the order intake consumer and the
// trade event producer.
type KafkaConfig struct {
	OrderTopic string   `env:"ORDER_TOPIC,required"`
	TradeTopic string   `env:"TRADE_TOPIC,required"`
	GroupID    string   `env:"GROUP_ID" envDefault:"default_group"`
	Brokers    []string `env:"BROKER,required"`
}

// RedisConfig holds the configuration for the Redis client.
type RedisConfig struct {
	Addrs    string `env:"ADDRESS" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	Username string `env:"USERNAME" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}

// SnapshotConfig selects where book snapshots are persisted.
type SnapshotConfig struct {
	Backend string `env:"BACKEND" envDefault:"redis"` // redis or pebble
	Dir     string `env:"DIR" envDefault:"./snapshots"`
}
