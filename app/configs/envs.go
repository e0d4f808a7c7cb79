package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppPort string `envconfig:"APP_PORT" default:"8080"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	AppURL  string `envconfig:"APP_URL" default:"http://localhost:8080"`

	DBDriver     string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DBHost       string        `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort       string        `envconfig:"DB_PORT" default:"3306"`
	DBUser       string        `envconfig:"DB_USER" default:"root"`
	DBPassword   string        `envconfig:"DB_PASSWORD"`
	DBName       string        `envconfig:"DB_NAME" default:"brandson"`
	SQLitePath   string        `envconfig:"SQLITE_PATH" default:"brandson.db"`
	DBMaxRetries int           `envconfig:"DB_MAX_RETRIES" default:"10"`
	DBRetryDelay time.Duration `envconfig:"DB_RETRY_DELAY" default:"5s"`

	CartStore string        `envconfig:"CART_STORE" default:"sql"`
	RedisURL  string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	CartTTL   time.Duration `envconfig:"CART_TTL" default:"720h"`

	SessionAuthKey string `envconfig:"SESSION_AUTH_KEY"`
	SessionEncKey  string `envconfig:"SESSION_ENC_KEY"`
	CSRFKey        string `envconfig:"CSRF_KEY"`

	MidtransServerKey string `envconfig:"MIDTRANS_SERVER_KEY"`
	MidtransClientKey string `envconfig:"MIDTRANS_CLIENT_KEY"`
	MidtransEnv       string `envconfig:"MIDTRANS_ENV" default:"sandbox"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"order-events"`

	EmailHost     string `envconfig:"EMAIL_HOST"`
	EmailPort     string `envconfig:"EMAIL_PORT" default:"587"`
	EmailUsername string `envconfig:"EMAIL_USERNAME"`
	EmailPassword string `envconfig:"EMAIL_PASSWORD"`
	EmailFrom     string `envconfig:"EMAIL_FROM" default:"orders@brandson.co.ke"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadEnv reads the optional .env files, then the process environment. Values
// already set in the environment win over the files.
func LoadEnv(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be mysql or sqlite, got %q", c.DBDriver)
	}
	switch c.CartStore {
	case "sql", "redis", "memory":
	default:
		return fmt.Errorf("CART_STORE must be sql, redis or memory, got %q", c.CartStore)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
