package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Remote   RemoteConfig   `mapstructure:"remote"`
	Program  ProgramConfig  `mapstructure:"program"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines admin session token configuration. Expiration is the
// fallback TTL used when the remote auth backend does not supply one.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// RemoteConfig holds the webhook endpoints of the workflow-automation
// backend that owns the user store, the workout-log store, and the admin
// credential check.
type RemoteConfig struct {
	InitURL      string        `mapstructure:"init_url"`
	OnboardURL   string        `mapstructure:"onboard_url"`
	LogWeightURL string        `mapstructure:"log_weight_url"`
	GetLogsURL   string        `mapstructure:"get_logs_url"`
	AdminAuthURL string        `mapstructure:"admin_auth_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// ProgramConfig tunes the progression model. The onboarding flow offers
// 2/3/4 days per week, so the allowed range is configuration rather than
// a hard-coded pair.
type ProgramConfig struct {
	Weeks              int    `mapstructure:"weeks"`
	VariationCount     int    `mapstructure:"variation_count"`
	AllowedDaysPerWeek []int  `mapstructure:"allowed_days_per_week"`
	DefaultDaysPerWeek int    `mapstructure:"default_days_per_week"`
	DefaultVariation   string `mapstructure:"default_variation"`
}

// DaysPerWeekAllowed reports whether n is an accepted days-per-week setting.
func (p ProgramConfig) DaysPerWeekAllowed(n int) bool {
	for _, allowed := range p.AllowedDaysPerWeek {
		if n == allowed {
			return true
		}
	}
	return false
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variable handling: server.address -> SERVER_ADDRESS,
	// remote.init_url -> REMOTE_INIT_URL, etc.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "rootedwellness")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("remote.timeout", "15s")
	viper.SetDefault("program.weeks", 6)
	viper.SetDefault("program.variation_count", 2)
	viper.SetDefault("program.allowed_days_per_week", []int{2, 3, 4})
	viper.SetDefault("program.default_days_per_week", 3)
	viper.SetDefault("program.default_variation", "three-day")

	err = viper.ReadInConfig()
	// Config file is optional; env vars plus defaults may carry the whole
	// configuration.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
