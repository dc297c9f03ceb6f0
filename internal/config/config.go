package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/go_storefront/internal/loader"
	"github.com/fjod/go_storefront/internal/publisher"
	"github.com/fjod/go_storefront/internal/receipt"
	"gopkg.in/yaml.v3"
)

const (
	SourceHTTP   = "http"
	SourceFile   = "file"
	SourceSQLite = "sqlite"
)

type Config struct {
	HTTPPort        string        `yaml:"http_port"`
	LogLevel        string        `yaml:"log_level"`
	LogDevelopment  bool          `yaml:"log_development"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	Catalog CatalogConfig `yaml:"catalog"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Receipt ReceiptConfig `yaml:"receipt"`
}

type CatalogConfig struct {
	Source       string        `yaml:"source"`
	URL          string        `yaml:"url"`
	FilePath     string        `yaml:"file"`
	DBPath       string        `yaml:"db_path"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// RedisConfig enables the catalog document cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// KafkaConfig enables checkout events when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type ReceiptConfig struct {
	Dir   string `yaml:"dir"`
	Title string `yaml:"title"`
}

func Default() *Config {
	return &Config{
		HTTPPort:        "8080",
		LogLevel:        "info",
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Catalog: CatalogConfig{
			Source:       SourceHTTP,
			URL:          loader.DefaultURL,
			FetchTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{
			TTL: 15 * time.Minute,
		},
		Kafka: KafkaConfig{
			Topic: publisher.DefaultTopic,
		},
		Receipt: ReceiptConfig{
			Title: receipt.DefaultTitle,
		},
	}
}

// Load applies defaults, then the YAML file at path (if any), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) LoadFromEnv() error {
	c.HTTPPort = getEnv("HTTP_PORT", c.HTTPPort)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Catalog.Source = getEnv("CATALOG_SOURCE", c.Catalog.Source)
	c.Catalog.URL = getEnv("CATALOG_URL", c.Catalog.URL)
	c.Catalog.FilePath = getEnv("CATALOG_FILE", c.Catalog.FilePath)
	c.Catalog.DBPath = getEnv("CATALOG_DB_PATH", c.Catalog.DBPath)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Kafka.Topic = getEnv("KAFKA_TOPIC", c.Kafka.Topic)
	c.Receipt.Dir = getEnv("RECEIPT_DIR", c.Receipt.Dir)
	c.Receipt.Title = getEnv("RECEIPT_TITLE", c.Receipt.Title)

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = parseList(v)
	}

	var err error
	if c.LogDevelopment, err = getEnvBool("LOG_DEVELOPMENT", c.LogDevelopment); err != nil {
		return err
	}
	if c.Redis.DB, err = getEnvInt("REDIS_DB", c.Redis.DB); err != nil {
		return err
	}
	if c.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", c.RequestTimeout); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout); err != nil {
		return err
	}
	if c.Catalog.FetchTimeout, err = getEnvDuration("CATALOG_FETCH_TIMEOUT", c.Catalog.FetchTimeout); err != nil {
		return err
	}
	if c.Redis.TTL, err = getEnvDuration("REDIS_TTL", c.Redis.TTL); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.HTTPPort == "" {
		errs = append(errs, errors.New("http_port is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}

	switch c.Catalog.Source {
	case SourceHTTP:
		if c.Catalog.URL == "" {
			errs = append(errs, errors.New("catalog.url is required for the http source"))
		}
	case SourceFile:
		if c.Catalog.FilePath == "" {
			errs = append(errs, errors.New("catalog.file is required for the file source"))
		}
	case SourceSQLite:
		if c.Catalog.DBPath == "" {
			errs = append(errs, errors.New("catalog.db_path is required for the sqlite source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown catalog source %q", c.Catalog.Source))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
