package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/subbridge/subbridge/internal/types"
)

// LegacyAPIKeyEnv is the variable older deployments used for the subscription service key.
const LegacyAPIKeyEnv = "MP_API_KEY"

type Configuration struct {
	Deployment    DeploymentConfig    `validate:"required"`
	Logging       LoggingConfig       `validate:"required"`
	Subscriptions SubscriptionsConfig `mapstructure:"subscriptions"`
	Stripe        StripeConfig        `mapstructure:"stripe"`
	Sentry        SentryConfig        `mapstructure:"sentry"`
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Directives    DirectivesConfig    `mapstructure:"directives" validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required,oneof=local production"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required,oneof=debug info warn error"`
}

// SubscriptionsConfig points at the external subscription service. Both fields are
// checked when a call is made, not at startup.
type SubscriptionsConfig struct {
	ServiceURL string        `mapstructure:"service_url"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	// SearchRate caps customer searches per second
	SearchRate float64 `mapstructure:"search_rate" validate:"gte=0"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn" validate:"required_if=Enabled true"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// DirectivesConfig holds the SKU markers that turn a line item into a control signal.
type DirectivesConfig struct {
	FrequencyPrefix string `mapstructure:"frequency_prefix" validate:"required"`
	TrialPrefix     string `mapstructure:"trial_prefix" validate:"required"`
	TrialNoteKey    string `mapstructure:"trial_note_key" validate:"required"`
}

func NewConfig() (*Configuration, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/subbridge")

	v.SetEnvPrefix("SUBBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Subscriptions.APIKey == "" {
		config.Subscriptions.APIKey = os.Getenv(LegacyAPIKeyEnv)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("subscriptions.timeout", 30*time.Second)
	v.SetDefault("stripe.search_rate", 20.0)
	v.SetDefault("sentry.sample_rate", 1.0)
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 10*time.Minute)

	defaults := DefaultDirectives()
	v.SetDefault("directives.frequency_prefix", defaults.FrequencyPrefix)
	v.SetDefault("directives.trial_prefix", defaults.TrialPrefix)
	v.SetDefault("directives.trial_note_key", defaults.TrialNoteKey)

	// AutomaticEnv only sees keys viper already knows about
	for _, key := range []string{"subscriptions.service_url", "subscriptions.api_key", "stripe.secret_key", "sentry.dsn"} {
		v.SetDefault(key, "")
	}
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// DefaultDirectives returns the SKU markers used by the storefront.
func DefaultDirectives() DirectivesConfig {
	return DirectivesConfig{
		FrequencyPrefix: "TF_SUB_",
		TrialPrefix:     "TF_TRIAL_",
		TrialNoteKey:    "TF_ONGOING_TRIAL",
	}
}

// GetDefaultConfig returns a default configuration for local development and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Subscriptions: SubscriptionsConfig{
			Timeout: 30 * time.Second,
		},
		Stripe: StripeConfig{
			SearchRate: 20,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Directives: DefaultDirectives(),
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
