package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs the session cookie. Must be set outside development.
	SessionSecret   string        `env:"SESSION_SECRET,            default=dev-only-secret"`
	SessionTTL      time.Duration `env:"SESSION_TTL,               default=24h"`
	SessionRotation time.Duration `env:"SESSION_ROTATION_INTERVAL, default=30m"`

	BcryptCost   int `env:"BCRYPT_COST,   default=10"`
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	MySQL MySQLConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type MySQLConfig struct {
	DSN string `env:"MYSQL_DSN, default=storefront:storefront@tcp(localhost:3306)/storefront?charset=utf8mb4&parseTime=True&loc=UTC"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
