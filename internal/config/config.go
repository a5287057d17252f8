package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string      `yaml:"listen_addr" json:"listen_addr" env:"LISTEN_ADDR"`
	DBDSN      string      `yaml:"db_dsn" json:"-" env:"DB_DSN"`
	LogLevel   string      `yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`
	Auth       AuthConfig  `yaml:"auth" json:"auth" envPrefix:"AUTH_"`
	HTTP       HTTPConfig  `yaml:"http" json:"http" envPrefix:"HTTP_"`
	Media      MediaConfig `yaml:"media" json:"media" envPrefix:"MEDIA_"`
}

// AuthConfig параметры выдачи токенов.
type AuthConfig struct {
	Secret        string        `yaml:"secret" json:"-" env:"SECRET"`
	TokenTTL      time.Duration `yaml:"token_ttl" json:"token_ttl" env:"TOKEN_TTL"`
	SweepInterval time.Duration `yaml:"sweep_interval" json:"sweep_interval" env:"SWEEP_INTERVAL"`
}

type HTTPConfig struct {
	PageSize        int           `yaml:"page_size" json:"page_size" env:"PAGE_SIZE"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// MediaConfig описывает, где хранятся картинки рецептов.
// Если Nodes пуст, файлы пишутся в Dir и раздаются самим REST-сервисом.
type MediaConfig struct {
	Dir           string        `yaml:"dir" json:"dir" env:"DIR"`
	PublicURL     string        `yaml:"public_url" json:"public_url" env:"PUBLIC_URL"`
	Nodes         []string      `yaml:"nodes" json:"nodes" env:"NODES"`
	MaxImageBytes int64         `yaml:"max_image_bytes" json:"max_image_bytes" env:"MAX_IMAGE_BYTES"`
	GCTTL         time.Duration `yaml:"gc_ttl" json:"gc_ttl" env:"GC_TTL"`
	GCInterval    time.Duration `yaml:"gc_interval" json:"gc_interval" env:"GC_INTERVAL"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		Auth: AuthConfig{
			TokenTTL:      7 * 24 * time.Hour,
			SweepInterval: time.Hour,
		},
		HTTP: HTTPConfig{
			PageSize:        6,
			ShutdownTimeout: 15 * time.Second,
		},
		Media: MediaConfig{
			Dir:           "./media",
			PublicURL:     "/media",
			MaxImageBytes: 5 << 20,
			GCTTL:         24 * time.Hour,
			GCInterval:    30 * time.Minute,
		},
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
func Load() (*Config, error) {
	return LoadFile(getenv("CONFIG_PATH", "./config.yaml"))
}

// LoadFile то же, что Load, но с явным путём. Отсутствующий файл не ошибка.
func LoadFile(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	// ENV override
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	c.Media.Nodes = cleanList(c.Media.Nodes)

	return c, nil
}

// Validate проверяет обязательные параметры REST-сервиса.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBDSN) == "" {
		return fmt.Errorf("db_dsn is not configured")
	}
	if len(c.Auth.Secret) < 16 {
		return fmt.Errorf("auth.secret must be at least 16 bytes")
	}
	if c.HTTP.PageSize <= 0 || c.HTTP.PageSize > MaxPageSize {
		return fmt.Errorf("http.page_size must be in 1..%d", MaxPageSize)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	return nil
}

// MaxPageSize верхняя граница параметра limit.
const MaxPageSize = 100

func cleanList(in []string) []string {
	var out []string
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}

	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
