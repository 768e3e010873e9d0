package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smith3v/tg-vocab-trainer/pkg/logger"
	"github.com/spf13/viper"
)

const (
	envPrefix = "VOCAB"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Telegram TelegramConfig `mapstructure:"telegram" json:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging" json:"logging"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver" json:"driver"`
	DSN      string `mapstructure:"dsn" json:"dsn"`
	Host     string `mapstructure:"host" json:"host"`
	User     string `mapstructure:"user" json:"user"`
	Password string `mapstructure:"password" json:"password"`
	DBName   string `mapstructure:"dbname" json:"dbname"`
	Port     int    `mapstructure:"port" json:"port"`
	SSLMode  string `mapstructure:"sslmode" json:"sslmode"`
	Path     string `mapstructure:"path" json:"path"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token" json:"token"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level" json:"level"`
	File      string `mapstructure:"file" json:"file"`
	GormLevel string `mapstructure:"gorm_level" json:"gorm_level"`
}

var AppConfig Config

// envKeys lists every config key that may be overridden from the environment.
// BOT_TOKEN and DATABASE_URL are accepted for deployments that predate the
// VOCAB_ prefix.
var envKeys = map[string][]string{
	"database.driver":    nil,
	"database.dsn":       {"VOCAB_DATABASE_DSN", "DATABASE_URL"},
	"database.host":      nil,
	"database.user":      nil,
	"database.password":  nil,
	"database.dbname":    nil,
	"database.port":      nil,
	"database.sslmode":   nil,
	"database.path":      nil,
	"telegram.token":     {"VOCAB_TELEGRAM_TOKEN", "BOT_TOKEN"},
	"logging.level":      nil,
	"logging.file":       nil,
	"logging.gorm_level": nil,
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.gorm_level", "warn")

	for key, names := range envKeys {
		args := append([]string{key}, names...)
		_ = v.BindEnv(args...)
	}
	return v
}

// LoadConfig reads filename (when non-empty) and environment overrides into AppConfig.
func LoadConfig(filename string) error {
	v := NewViper()
	if strings.TrimSpace(filename) != "" {
		v.SetConfigFile(filename)
		if err := v.ReadInConfig(); err != nil {
			logger.Error("failed to read config file", "file", filename, "error", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Error("failed to decode config", "error", err)
		return err
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	AppConfig = cfg
	return nil
}

// Validate checks everything the bot needs to run.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Telegram.Token) == "" {
		errs = append(errs, errors.New("telegram.token is required"))
	}
	if err := c.Database.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if strings.TrimSpace(c.DSN) != "" {
			return nil
		}
		if strings.TrimSpace(c.Host) == "" || strings.TrimSpace(c.DBName) == "" {
			return errors.New("database.dsn or database.host and database.dbname are required for postgres")
		}
		return nil
	case DriverSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return errors.New("database.path is required for sqlite")
		}
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}
