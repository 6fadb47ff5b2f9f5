package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port           string        `mapstructure:"PORT"`
	Env            string        `mapstructure:"ENV"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	TokenTTL       time.Duration `mapstructure:"TOKEN_TTL"`
	FrontendOrigin string        `mapstructure:"FRONTEND_ORIGIN"`

	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	RedisURL     string `mapstructure:"REDIS_URL"`
	SentryDSN    string `mapstructure:"SENTRY_DSN"`
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
}

// IsProduction reports whether the service runs with production settings
// (JSON logs, secure cookies).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// MediaEnabled reports whether all Cloudinary credentials are present.
func (c *Config) MediaEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

var keys = []string{
	"PORT", "ENV", "DATABASE_URL", "JWT_SECRET", "TOKEN_TTL", "FRONTEND_ORIGIN",
	"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
	"REDIS_URL", "SENTRY_DSN", "OTLP_ENDPOINT",
}

// LoadConfig loads the configuration from a .env file in dir and environment variables.
// Environment variables take precedence over the file.
func LoadConfig(dir string) (*Config, bool, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.SetDefault("PORT", "8800")
	v.SetDefault("ENV", "development")
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("FRONTEND_ORIGIN", "http://localhost:3000")

	// AutomaticEnv only resolves keys viper already knows about, so bind them all
	// explicitly for Unmarshal to see values that exist only in the environment.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	v.AutomaticEnv()

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, false, err
		}
		fileFound = false
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fileFound, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fileFound, err
	}
	return &cfg, fileFound, nil
}

// Validate checks that the settings the service cannot start without are present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}
