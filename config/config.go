package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration read from the environment.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"checkinly"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DB DatabaseConfig

	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
	BcryptCost     int           `env:"BCRYPT_COST" envDefault:"10"`

	CorsOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	Redis     RedisConfig
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	RabbitURL   string `env:"RABBITMQ_URL"`
	EventsQueue string `env:"EVENTS_QUEUE" envDefault:"checkinly.events"`

	SearchCacheTTL      time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"30s"`
	LockSweepSchedule   string        `env:"LOCK_SWEEP_SCHEDULE" envDefault:"@every 1m"`
	LowBatteryThreshold int           `env:"LOW_BATTERY_THRESHOLD" envDefault:"20"`
	SettingsDir         string        `env:"SETTINGS_DIR" envDefault:"data/settings"`
}

type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" envDefault:"mysql"`
	MySQLURL string `env:"MYSQL_URL"`
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port     string `env:"DB_PORT"`
	User     string `env:"DB_USER" envDefault:"root"`
	Password string `env:"DB_PASS"`
	Name     string `env:"DB_NAME" envDefault:"checkinly"`
	LogLevel string `env:"DB_LOG_LEVEL" envDefault:"warn"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	TLS      bool   `env:"REDIS_TLS" envDefault:"false"`
}

type RateLimitConfig struct {
	Enabled        bool          `env:"ENABLED" envDefault:"true"`
	Capacity       int           `env:"CAPACITY" envDefault:"20"`
	RefillTokens   int           `env:"REFILL_TOKENS" envDefault:"1"`
	RefillInterval time.Duration `env:"REFILL_INTERVAL" envDefault:"3s"`
	TTL            time.Duration `env:"TTL" envDefault:"10m"`
	Prefix         string        `env:"PREFIX" envDefault:"rl"`
}

// Load parses the environment into a Config and normalizes it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	if c.DB.Driver == "" {
		c.DB.Driver = DriverMySQL
	}

	origins := make([]string, 0, len(c.CorsOrigins))
	for _, o := range c.CorsOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.CorsOrigins = origins

	rl := &c.RateLimit
	if rl.Capacity < 1 {
		rl.Capacity = 1
	}
	if rl.RefillTokens < 1 {
		rl.RefillTokens = 1
	}
	if rl.RefillInterval <= 0 {
		rl.RefillInterval = time.Second
	}
	if minTTL := 5 * rl.RefillInterval; rl.TTL < minTTL {
		rl.TTL = minTTL
	}
}

// AllowCredentials is false when any origin is the wildcard.
func (c Config) AllowCredentials() bool {
	for _, o := range c.CorsOrigins {
		if o == "*" {
			return false
		}
	}
	return true
}
