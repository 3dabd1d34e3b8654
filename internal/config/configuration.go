package config

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"framerip/internal/logger"
	"framerip/internal/sampling"
)

type Config struct {
	// Output locations
	FramesRoot string `mapstructure:"FRAMES_ROOT" validate:"required"`
	RecordsDir string `mapstructure:"RECORDS_DIR"`

	// Sampling
	SafetyMargin float64 `mapstructure:"SAFETY_MARGIN" validate:"gte=0"`
	MinStep      float64 `mapstructure:"MIN_STEP" validate:"gt=0"`
	DefaultStep  float64 `mapstructure:"DEFAULT_STEP" validate:"gt=0"`
	Precision    int     `mapstructure:"PRECISION" validate:"gte=0,lte=6"`

	// Capture
	CaptureFormat string `mapstructure:"CAPTURE_FORMAT" validate:"oneof=png jpg"`

	LogLevel   string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	DaemonAddr string `mapstructure:"DAEMON_ADDR" validate:"required"`
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	typ := reflect.TypeOf(c)
	for i := 0; i < typ.NumField(); i++ {
		if tag := typ.Field(i).Tag.Get("mapstructure"); tag != "" {
			_ = viper.BindEnv(tag)
		}
	}
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("FRAMES_ROOT", "frames")
	viper.SetDefault("RECORDS_DIR", "")
	viper.SetDefault("SAFETY_MARGIN", sampling.DefaultMargin)
	viper.SetDefault("MIN_STEP", sampling.DefaultMinStep)
	viper.SetDefault("DEFAULT_STEP", sampling.DefaultStep)
	viper.SetDefault("PRECISION", sampling.DefaultPrecision)
	viper.SetDefault("CAPTURE_FORMAT", "png")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DAEMON_ADDR", ":8080")

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	logger.Log.WithField("config", cfg).Debug("Loaded configuration")

	return &cfg, nil
}

// Resolver builds a sampling resolver from the sampling settings.
func (c *Config) Resolver() *sampling.Resolver {
	r := sampling.NewResolver()
	r.Margin = c.SafetyMargin
	r.MinStep = c.MinStep
	r.DefaultStep = c.DefaultStep
	r.Precision = c.Precision
	return r
}
