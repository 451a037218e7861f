package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Defaults: port 10000 and the model file in the working directory.
const (
	DefaultPort      = "10000"
	DefaultModelPath = "rf_model_maize_maturity.onnx"
	DefaultDBPath    = "predictions.db"
	DefaultLogLevel  = "info"
	DefaultGinMode   = "release"
)

// Config holds the service settings. Every key can be overridden by an
// environment variable of the same name in upper case (PORT, MODEL_PATH, ...).
type Config struct {
	Port            string `mapstructure:"port" validate:"required,numeric"`
	ModelPath       string `mapstructure:"model_path" validate:"required"`
	ModelInputName  string `mapstructure:"model_input_name"`
	ModelOutputName string `mapstructure:"model_output_name"`
	ONNXLibrary     string `mapstructure:"onnx_library"`
	DBPath          string `mapstructure:"db_path"`
	LogLevel        string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	GinMode         string `mapstructure:"gin_mode" validate:"oneof=debug release test"`
}

// Load reads configs/config.yml (if present) from configDir and overlays the environment.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, formatValidationErrors(err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", DefaultPort)
	v.SetDefault("model_path", DefaultModelPath)
	v.SetDefault("model_input_name", "")
	v.SetDefault("model_output_name", "")
	v.SetDefault("onnx_library", "")
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("gin_mode", DefaultGinMode)
}

// formatValidationErrors flattens validator output into one readable error.
func formatValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
