package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const Production = "production"

type DatabaseConfig struct {
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	Port       string `env:"DB_PORT" envDefault:"5432"`
	User       string `env:"DB_USER" envDefault:"postgres"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME" envDefault:"hrms"`
	SSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxRetries int    `env:"DB_MAX_RETRIES" envDefault:"5"`

	AutoMigrate bool `env:"DB_AUTO_MIGRATE" envDefault:"false"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password   string `env:"REDIS_PASSWORD"`
	DB         int    `env:"REDIS_DB" envDefault:"0"`
	MaxRetries int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
}

type KafkaConfig struct {
	Broker        string        `env:"KAFKA_BROKER"`
	ConsumerGroup string        `env:"KAFKA_CONSUMER_GROUP" envDefault:"hrms-salary-structure"`
	PollInterval  time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"3s"`
	MaxRetries    int           `env:"KAFKA_MAX_RETRIES" envDefault:"5"`
	// MetricsAddr is where the worker and consumer serve /metrics. Empty
	// disables it.
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9102"`
}

type HTTPConfig struct {
	Port         string        `env:"PORT" envDefault:"3000"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	// UploadsDir is served under /uploads.
	UploadsDir string `env:"UPLOADS_DIR" envDefault:"./uploads"`
}

type AuthConfig struct {
	Enabled    bool          `env:"AUTH_ENABLED" envDefault:"true"`
	JWTSecret  string        `env:"JWT_SECRET"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`
	// AdminEmail and AdminPassword seed the first ADMIN account when set.
	AdminEmail    string `env:"AUTH_ADMIN_EMAIL"`
	AdminPassword string `env:"AUTH_ADMIN_PASSWORD"`
}

// ClientConfig is read by hrmsctl.
type ClientConfig struct {
	APIBaseURL    string        `env:"HRMS_API_URL" envDefault:"http://localhost:3000/api/v1"`
	UploadBaseURL string        `env:"HRMS_UPLOAD_URL" envDefault:"http://localhost:3000"`
	Timeout       time.Duration `env:"HRMS_CLIENT_TIMEOUT" envDefault:"15s"`
	Token         string        `env:"HRMS_TOKEN"`
}

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	HTTP     HTTPConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Client   ClientConfig
}

func (c *Config) IsProduction() bool {
	return c.Env == Production
}

// Load reads optional .env files, then parses the process environment.
// Missing files are skipped.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	existing := make([]string, 0, len(envFiles))
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
