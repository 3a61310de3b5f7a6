package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	// DATABASE_URL always wins over the [db] section so deployments never
	// carry credentials in the config file.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DB.URL = url
	}

	if cfg.DB.URL == "" && cfg.DB.Host == "" {
		return nil, fmt.Errorf("no database configured: set DATABASE_URL or the [db] section in %s", path)
	}

	return &cfg, nil
}

type Config struct {
	Log LogConfig `toml:"log"`
	DB  DBConfig  `toml:"db"`
	ETL ETLConfig `toml:"etl"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type DBConfig struct {
	URL      string `toml:"url"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type ETLConfig struct {
	BatchSize int `toml:"batch_size"`
}

// DSN returns the connection string, preferring an explicit URL.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		c.User, c.Password, c.Host, c.Port, c.Database,
	)
}
