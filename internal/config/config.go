package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/studyplan/internal/mastery"
)

type Config struct {
	OwnerID   string          `mapstructure:"owner_id"`
	Timezone  string          `mapstructure:"timezone" validate:"omitempty,timezone"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Server    ServerConfig    `mapstructure:"server"`
	Reminder  ReminderConfig  `mapstructure:"reminder"`
	Syllabus  SyllabusConfig  `mapstructure:"syllabus"`
}

type SchedulerConfig struct {
	ReviewIntervals []int `mapstructure:"review_intervals" validate:"required,min=1,dive,gt=0"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql postgres sqlite3"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite3"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts" validate:"min=1"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ReminderConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	At      string   `mapstructure:"at" validate:"datetime=15:04"`
	Owners  []string `mapstructure:"owners"`
}

type SyllabusConfig struct {
	DefaultFile string `mapstructure:"default_file" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studyplan")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("owner_id", "default")
	// Empty means the local timezone of the machine
	v.SetDefault("timezone", "")
	v.SetDefault("scheduler.review_intervals", mastery.DefaultReviewIntervals)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "studyplan")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.path", "studyplan.db")
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("reminder.enabled", false)
	v.SetDefault("reminder.at", "00:00")
	// Empty means that the embedded default syllabus is used
	v.SetDefault("syllabus.default_file", "")

	// Secrets are bound to environment variables only (not from config file)
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("owner_id", "STUDYPLAN_OWNER_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind STUDYPLAN_OWNER_ID environment variable: %w", err)
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

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// IntervalTable builds the review interval table from the configuration
func (cfg *Config) IntervalTable() (mastery.IntervalTable, error) {
	return mastery.NewIntervalTable(cfg.Scheduler.ReviewIntervals)
}
