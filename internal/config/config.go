package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override file values,
// e.g. MENU_STORAGE__DRIVER=sqlite or MENU_DATABASE__HOST=db.
const EnvPrefix = "MENU_"

// Storage drivers accepted by storage.driver.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverS3       = "s3"
)

// Config holds all configuration for the menu service
type Config struct {
	App      AppConfig      `koanf:"app"`
	Storage  StorageConfig  `koanf:"storage"`
	Database DatabaseConfig `koanf:"database"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Redis    RedisConfig    `koanf:"redis"`
	S3       S3Config       `koanf:"s3"`
	RabbitMQ RabbitMQConfig `koanf:"rabbitmq"`
}

type AppConfig struct {
	LogLevel string `koanf:"log_level"`
	LogFile  string `koanf:"log_file"`
}

// StorageConfig selects the document store backing the menu catalog
type StorageConfig struct {
	Driver   string `koanf:"driver"`
	Dir      string `koanf:"dir"`
	Location string `koanf:"location"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type S3Config struct {
	Bucket   string `koanf:"bucket"`
	Region   string `koanf:"region"`
	Endpoint string `koanf:"endpoint"`
	Prefix   string `koanf:"prefix"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
}

// Default returns the configuration used when no file or env value overrides a key.
func Default() Config {
	return Config{
		App: AppConfig{LogLevel: "info"},
		Storage: StorageConfig{
			Driver:   DriverFile,
			Dir:      ".",
			Location: "menu.json",
		},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Database: "restaurant"},
		SQLite:   SQLiteConfig{Path: "menu.db"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		S3:       S3Config{Region: "us-east-1"},
		RabbitMQ: RabbitMQConfig{Host: "localhost", Port: 5672, User: "guest", Password: "guest"},
	}
}

// Load reads configuration from a YAML file, then applies MENU_ environment overrides.
// A missing file is not an error; the defaults and environment still apply.
func Load(filename string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	k := koanf.New(".")

	if filename != "" {
		if err := k.Load(file.Provider(filename), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected storage driver is usable
func (c *Config) Validate() error {
	if c.Storage.Location == "" {
		return fmt.Errorf("storage.location is required")
	}
	switch c.Storage.Driver {
	case DriverFile, DriverPostgres, DriverSQLite, DriverRedis:
	case DriverS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver: %q", c.Storage.Driver)
	}
	return nil
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
