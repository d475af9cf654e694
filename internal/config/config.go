package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Intangles IntanglesConfig `yaml:"intangles" mapstructure:"intangles"`
	Savings   SavingsConfig   `yaml:"savings" mapstructure:"savings"`
	Poll      PollConfig      `yaml:"poll" mapstructure:"poll"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// IntanglesConfig holds the telemetry API credentials and the fuel_consumed
// query parameters, which are passed through to the remote verbatim.
type IntanglesConfig struct {
	BaseURL         string `yaml:"base_url" mapstructure:"base_url"`
	Token           string `yaml:"token" mapstructure:"token"`
	AccountID       string `yaml:"acc_id" mapstructure:"acc_id"`
	SpecIDs         string `yaml:"spec_ids" mapstructure:"spec_ids"`
	PageSize        int    `yaml:"page_size" mapstructure:"page_size"`
	Lang            string `yaml:"lang" mapstructure:"lang"`
	NoDefaultFields bool   `yaml:"no_default_fields" mapstructure:"no_default_fields"`
	Projection      string `yaml:"proj" mapstructure:"proj"`
	Groups          string `yaml:"groups" mapstructure:"groups"`
	LastLocation    bool   `yaml:"lastloc" mapstructure:"lastloc"`
	TimeoutSecs     int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxPages        int    `yaml:"max_pages" mapstructure:"max_pages"`
}

// SavingsConfig configures the unit conversion pipeline and display offset.
type SavingsConfig struct {
	// Unit is the unit the remote reports fuel in: "kg" or "L".
	Unit string `yaml:"unit" mapstructure:"unit"`
	// Density is the fuel mass per liter, used only when Unit is "L".
	Density float64 `yaml:"density" mapstructure:"density"`
	// OffsetTons is added to the computed savings before display.
	OffsetTons float64 `yaml:"offset_tons" mapstructure:"offset_tons"`
}

// PollConfig configures the background refresh loop.
type PollConfig struct {
	IntervalSecs int `yaml:"interval_secs" mapstructure:"interval_secs"`
}

// ServerConfig configures the kiosk HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CARBONCLOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	// Token has no meaningful default, but viper only resolves env vars
	// for keys it already knows about, so the empty default is what makes
	// CARBONCLOCK_INTANGLES_TOKEN work without a config file.
	v.SetDefault("intangles.token", "")
	v.SetDefault("intangles.base_url", "https://apis.intangles.com")
	v.SetDefault("intangles.acc_id", "962759605811675136")
	v.SetDefault("intangles.spec_ids", "966986020958502912,969208267156750336")
	v.SetDefault("intangles.page_size", 300)
	v.SetDefault("intangles.lang", "en")
	v.SetDefault("intangles.no_default_fields", true)
	v.SetDefault("intangles.proj", "total_fuel_consumed")
	v.SetDefault("intangles.groups", "")
	v.SetDefault("intangles.lastloc", true)
	v.SetDefault("intangles.timeout_secs", 45)
	v.SetDefault("intangles.max_pages", 1000)
	v.SetDefault("savings.unit", "kg")
	v.SetDefault("savings.density", 0.45)
	v.SetDefault("savings.offset_tons", 0.0)
	v.SetDefault("poll.interval_secs", 5)
	v.SetDefault("server.port", 8000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
