package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	OIDC      OIDCConfig
	S3        S3Config
	Log       LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Name    string `envconfig:"APP_NAME" default:"flickr2App"`
	Version string `envconfig:"APP_VERSION" default:"0.0.1-SNAPSHOT"`
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	MigrationsPath  string        `envconfig:"MIGRATIONS_PATH" default:"migrations"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" required:"true"`
	Password        string        `envconfig:"DB_PASSWORD" required:"true"`
	Name            string        `envconfig:"DB_NAME" required:"true"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// OIDCConfig configures bearer token validation. Keys come from JWKSURI when
// set, otherwise tokens are HS256 signed with HMACSecret.
type OIDCConfig struct {
	IssuerURI  string        `envconfig:"OIDC_ISSUER_URI" required:"true"`
	Audience   []string      `envconfig:"OIDC_AUDIENCE" default:"account,api://default"`
	JWKSURI    string        `envconfig:"OIDC_JWKS_URI"`
	HMACSecret string        `envconfig:"OIDC_HMAC_SECRET"`
	ClientID   string        `envconfig:"OIDC_CLIENT_ID" default:"web_app"`
	RolesClaim string        `envconfig:"OIDC_ROLES_CLAIM"`
	TokenTTL   time.Duration `envconfig:"OIDC_TOKEN_TTL" default:"1h"`
}

func (c OIDCConfig) Validate() error {
	if c.JWKSURI == "" && c.HMACSecret == "" {
		return errors.New("one of OIDC_JWKS_URI or OIDC_HMAC_SECRET is required")
	}
	return nil
}

// S3Config enables the photo image mirror when Bucket is set.
type S3Config struct {
	Endpoint        string        `envconfig:"S3_ENDPOINT"`
	Region          string        `envconfig:"S3_REGION" default:"us-east-1"`
	Bucket          string        `envconfig:"S3_BUCKET"`
	AccessKeyID     string        `envconfig:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string        `envconfig:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool          `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	PresignExpiry   time.Duration `envconfig:"S3_PRESIGN_EXPIRY" default:"15m"`
}

func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

const (
	RateLimitMemory = "memory"
	RateLimitRedis  = "redis"
)

type RateLimitConfig struct {
	Enabled         bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Backend         string        `envconfig:"RATE_LIMIT_BACKEND" default:"memory"`
	RequestsPerMin  int           `envconfig:"RATE_LIMIT_REQUESTS_PER_MIN" default:"100"`
	BurstSize       int           `envconfig:"RATE_LIMIT_BURST_SIZE" default:"10"`
	CleanupInterval time.Duration `envconfig:"RATE_LIMIT_CLEANUP_INTERVAL" default:"1m"`
}

type CORSConfig struct {
	AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:8100,http://localhost:9000"`
	MaxAge         time.Duration `envconfig:"CORS_MAX_AGE" default:"30m"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.OIDC.Validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.RateLimit.Backend != RateLimitMemory && cfg.RateLimit.Backend != RateLimitRedis {
		return nil, fmt.Errorf("loading config: unknown rate limit backend %q", cfg.RateLimit.Backend)
	}
	return &cfg, nil
}
