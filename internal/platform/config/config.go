package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage selecciona el backend del DAO.
type Storage string

const (
	StorageMongo    Storage = "mongo"
	StoragePostgres Storage = "postgres"
	StorageMemory   Storage = "memory"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config del servicio. Se lee de YAML y luego se pisa con variables de entorno.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Storage   Storage         `yaml:"storage"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type MongoConfig struct {
	Host       string `yaml:"host"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	AuthSource string `yaml:"auth_source"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type AuthConfig struct {
	// Token vacío = modo dev (X-Debug-User-ID).
	Token      string `yaml:"token"`
	OperatorID string `yaml:"operator_id"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

type DashboardConfig struct {
	Title    string `yaml:"title"`
	PageSize int    `yaml:"page_size"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageMongo,
		Mongo: MongoConfig{
			Host:       "localhost:27017",
			Database:   "AAC",
			Collection: "animals",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			App:    "animal-shelter",
		},
		Dashboard: DashboardConfig{
			PageSize: 10,
		},
	}
}

// Load lee path (si existe), aplica env y valida. path vacío = solo defaults + env.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// sin archivo: defaults
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides: mismas variables que usaba el servicio antes de tener archivo de config.
func (c *Config) applyEnvOverrides() error {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT=%q: %w", v, ErrInvalidConfig)
		}
		c.HTTP.Port = p
	}
	if v := strings.TrimSpace(os.Getenv("STORAGE")); v != "" {
		c.Storage = Storage(strings.ToLower(v))
	}

	setString(&c.Mongo.Host, "MONGO_HOST")
	setString(&c.Mongo.Username, "MONGO_USER")
	setString(&c.Mongo.Password, "MONGO_PASSWORD")
	setString(&c.Mongo.AuthSource, "MONGO_AUTH_SOURCE")
	setString(&c.Mongo.Database, "MONGO_DATABASE")
	setString(&c.Mongo.Collection, "MONGO_COLLECTION")
	setString(&c.Postgres.DSN, "DB_DSN")
	setString(&c.Auth.Token, "API_TOKEN")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.Format, "LOG_FORMAT")
	setString(&c.Logging.App, "APP_NAME")
	return nil
}

func setString(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range: %w", c.HTTP.Port, ErrInvalidConfig)
	}
	switch c.Storage {
	case StorageMongo:
		if strings.TrimSpace(c.Mongo.Host) == "" {
			return fmt.Errorf("mongo.host required: %w", ErrInvalidConfig)
		}
	case StoragePostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return fmt.Errorf("postgres.dsn (DB_DSN) required: %w", ErrInvalidConfig)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("storage %q: %w", c.Storage, ErrInvalidConfig)
	}
	if c.Dashboard.PageSize <= 0 {
		c.Dashboard.PageSize = 10
	}
	return nil
}

// Addr es la dirección de escucha para http.Server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.HTTP.Port)
}
