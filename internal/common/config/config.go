package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"github.com/AlibekovAA/seraas-authentication/internal/common/constants"
	commonerrors "github.com/AlibekovAA/seraas-authentication/internal/common/errors"
)

type AppConfig struct {
	HTTPPort           string        `mapstructure:"http_port" validate:"required,numeric"`
	DatabaseURL        string        `mapstructure:"database_url" validate:"required"`
	FlushSecretKey     string        `mapstructure:"flush_secret_key" validate:"required,min=8"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	RetentionWindow    time.Duration `mapstructure:"retention_window" validate:"gt=0"`
	RetentionSchedule  string        `mapstructure:"retention_sweep_schedule" validate:"omitempty,cronspec"`
	AllowCrossUserLoad bool          `mapstructure:"allow_cross_user_load"`
	AutoMigrate        bool          `mapstructure:"auto_migrate"`
	CORSOrigins        []string      `mapstructure:"cors_allowed_origins"`
	LogDir             string        `mapstructure:"log_dir"`
	LogLevel           string        `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error critical DEBUG INFO WARN WARNING ERROR CRITICAL"`
}

var defaults = map[string]any{
	"http_port":                constants.DefaultHTTPPort,
	"request_timeout":          constants.DefaultRequestTimeout,
	"retention_window":         constants.RetentionWindow,
	"retention_sweep_schedule": "",
	"allow_cross_user_load":    false,
	"auto_migrate":             true,
	"cors_allowed_origins":     []string{"*"},
	"log_dir":                  "",
	"log_level":                "info",
}

var envKeys = []string{
	"http_port",
	"database_url",
	"flush_secret_key",
	"request_timeout",
	"retention_window",
	"retention_sweep_schedule",
	"allow_cross_user_load",
	"auto_migrate",
	"cors_allowed_origins",
	"log_dir",
	"log_level",
}

// Load reads the configuration from the environment, optionally layered over
// a config file. Environment variables win over file values.
func Load(configFile string) (AppConfig, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	for _, key := range envKeys {
		if err := v.BindEnv(key, envName(key)); err != nil {
			return AppConfig{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("%w: %v", commonerrors.ErrInvalidConfig, err)
	}

	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func Validate(cfg AppConfig) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("cronspec", validateCronSpec); err != nil {
		return err
	}

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", commonerrors.ErrInvalidConfig, err)
	}

	fe := verrs[0]
	env := envName(fieldKey(fe.Field()))
	if fe.Tag() == "required" {
		return fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredConfig, env)
	}
	return fmt.Errorf("%w: %s failed %q", commonerrors.ErrInvalidConfig, env, fe.Tag())
}

func validateCronSpec(fl validator.FieldLevel) bool {
	_, err := cron.ParseStandard(fl.Field().String())
	return err == nil
}

func fieldKey(field string) string {
	switch field {
	case "HTTPPort":
		return "http_port"
	case "DatabaseURL":
		return "database_url"
	case "FlushSecretKey":
		return "flush_secret_key"
	case "RequestTimeout":
		return "request_timeout"
	case "RetentionWindow":
		return "retention_window"
	case "RetentionSchedule":
		return "retention_sweep_schedule"
	case "LogLevel":
		return "log_level"
	default:
		return field
	}
}

func envName(key string) string {
	return strings.ToUpper(key)
}
