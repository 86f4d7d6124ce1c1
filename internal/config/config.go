// Package config loads service settings from configs/config.yml, .env and SOLAR_* variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"solar_advisor/internal/advisory"
	"solar_advisor/internal/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SOLAR"

type Config struct {
	Port      string              `mapstructure:"port"`
	HTTP      HTTPConfig          `mapstructure:"http"`
	Log       LogConfig           `mapstructure:"log"`
	DB        DBConfig            `mapstructure:"db"`
	Model     ModelConfig         `mapstructure:"model"`
	Advisory  advisory.Thresholds `mapstructure:"advisory"`
	Auth      AuthConfig          `mapstructure:"auth"`
	RateLimit RateLimitConfig     `mapstructure:"ratelimit"`
	Simulator SimulatorConfig     `mapstructure:"simulator"`
	MQTT      MQTTConfig          `mapstructure:"mqtt"`
	Subsidies SubsidiesConfig     `mapstructure:"subsidies"`
	Recommend RecommendConfig     `mapstructure:"recommend"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type ModelConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// RateLimitConfig applies per client IP on /api/v1. RPS <= 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type SimulatorConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Tick          time.Duration `mapstructure:"tick"`
	Seed          int64         `mapstructure:"seed"`
	PanelAgeYears int           `mapstructure:"panel_age_years"`
	StartDate     string        `mapstructure:"start_date"` // YYYY-MM-DD
}

// MQTTConfig is optional; an empty Broker disables publishing.
type MQTTConfig struct {
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"client_id"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	Topic       string `mapstructure:"topic"`
	MinSeverity string `mapstructure:"min_severity"`
}

type SubsidiesConfig struct {
	Path string `mapstructure:"path"`
}

// RecommendConfig seeds the synthetic panel catalog.
type RecommendConfig struct {
	Seed        int64 `mapstructure:"seed"`
	CatalogSize int   `mapstructure:"catalog_size"`
}

func setDefaults(v *viper.Viper) {
	d := advisory.DefaultThresholds()

	v.SetDefault("port", "8080")
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("model.path", "models/solar_model.json")
	v.SetDefault("advisory.critical_dust_days", d.CriticalDustDays)
	v.SetDefault("advisory.optimal_lower", d.OptimalLower)
	v.SetDefault("advisory.optimal_upper", d.OptimalUpper)
	v.SetDefault("advisory.critical_efficiency", d.CriticalEfficiency)
	v.SetDefault("advisory.age_limit_years", d.AgeLimitYears)
	v.SetDefault("advisory.cleaning_interval_days", d.CleaningIntervalDays)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("simulator.enabled", false)
	v.SetDefault("simulator.tick", 5*time.Second)
	v.SetDefault("simulator.seed", 42)
	v.SetDefault("simulator.panel_age_years", 3)
	v.SetDefault("simulator.start_date", "2023-01-01")
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "solar-advisor")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.topic", "solar/advisory/{severity}")
	v.SetDefault("mqtt.min_severity", string(models.SeverityCritical))
	v.SetDefault("subsidies.path", "configs/subsidies.yml")
	v.SetDefault("recommend.seed", 42)
	v.SetDefault("recommend.catalog_size", 20000)
}

// Load reads config.yml from the first matching path (default "configs"), after
// loading .env into the process environment. A missing config file is not an error.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load() // optional

	v := viper.New()
	setDefaults(v)

	if len(paths) == 0 {
		paths = []string{"configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Model.Path) == "" {
		errs = append(errs, errors.New("model.path is required"))
	}
	if err := c.Advisory.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("advisory: %w", err))
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("http.shutdown_timeout must be positive"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Simulator.Enabled && c.Simulator.Tick <= 0 {
		errs = append(errs, errors.New("simulator.tick must be positive"))
	}
	if _, err := time.Parse(time.DateOnly, c.Simulator.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("simulator.start_date: %w", err))
	}
	if c.Recommend.CatalogSize <= 0 {
		errs = append(errs, errors.New("recommend.catalog_size must be positive"))
	}
	if c.MQTT.Broker != "" && models.Severity(c.MQTT.MinSeverity).Rank() == 0 {
		errs = append(errs, fmt.Errorf("mqtt.min_severity %q is not a severity", c.MQTT.MinSeverity))
	}
	return errors.Join(errs...)
}
