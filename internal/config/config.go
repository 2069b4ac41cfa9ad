package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StorageYAML  = "yaml"
	StorageMySQL = "mysql"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	Outputs  OutputsConfig  `mapstructure:"outputs"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database" validate:"-"`
}

type APIConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
	RetryAttempts  uint   `mapstructure:"retry_attempts" validate:"max=10"`
}

// QuizConfig holds the defaults of a quiz generation request.
type QuizConfig struct {
	NumQuestions int    `mapstructure:"num_questions" validate:"min=1,max=50"`
	Title        string `mapstructure:"title" validate:"required"`
	Category     string `mapstructure:"category"`
	Difficulty   string `mapstructure:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory" validate:"required"`
	ReportTemplate  string `mapstructure:"report_template" validate:"omitempty,file"`
}

type ServerConfig struct {
	Address           string   `mapstructure:"address" validate:"required"`
	Storage           string   `mapstructure:"storage" validate:"oneof=yaml mysql"`
	DataFile          string   `mapstructure:"data_file" validate:"required_if=Storage yaml"`
	AllowedOrigins    []string `mapstructure:"allowed_origins"`
	RequestsPerMinute int      `mapstructure:"requests_per_minute" validate:"min=0"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host" validate:"required"`
	Port            int               `mapstructure:"port" validate:"min=1,max=65535"`
	Database        string            `mapstructure:"database" validate:"required"`
	Username        string            `mapstructure:"username" validate:"required"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/levelup")
	}

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout_seconds", 10)
	v.SetDefault("api.retry_attempts", 2)
	v.SetDefault("quiz.num_questions", 5)
	v.SetDefault("quiz.title", "Generated Quiz")
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.storage", StorageYAML)
	v.SetDefault("server.data_file", filepath.Join("data", "flashcards.yml"))
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.requests_per_minute", 100)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "levelup")

	if err := v.BindEnv("api.base_url", "LEVELUP_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind LEVELUP_API_BASE_URL environment variable: %w", err)
	}
	// Database credentials come from the environment only
	if err := v.BindEnv("database.username", "LEVELUP_DATABASE_USERNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind LEVELUP_DATABASE_USERNAME environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "LEVELUP_DATABASE_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind LEVELUP_DATABASE_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration. Database settings are only checked for MySQL storage.
func (cfg *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return fmt.Errorf("newValidator() > %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return translateValidationError(err, trans)
	}
	if cfg.Server.Storage == StorageMySQL {
		return cfg.Database.Validate()
	}
	return nil
}

// Validate checks the MySQL settings. Commands that always need the database call it directly.
func (cfg DatabaseConfig) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return fmt.Errorf("newValidator() > %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return translateValidationError(err, trans)
	}
	return nil
}

func translateValidationError(err error, trans ut.Translator) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldErr.Translate(trans))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}
