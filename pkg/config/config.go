package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the tracker reads.
const EnvPrefix = "rewardtrack"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App AppConfig
	DB  DBConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"REWARDTRACK_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"REWARDTRACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"REWARDTRACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// Path is the sqlite database file. The file is created on first run.
	Path        string `envconfig:"REWARDTRACK_DB_PATH" default:"reward_system.db"`
	AutoMigrate bool   `envconfig:"REWARDTRACK_DB_AUTO_MIGRATE" default:"true"`
}

func (d DBConfig) validate() error {
	if strings.TrimSpace(d.Path) == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}

// DSN renders the sqlite connection string with foreign key enforcement on.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("file:%s?_foreign_keys=on", d.Path)
}
