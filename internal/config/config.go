package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	NATSURL           string
	JWTSecret         string
	ProgressCacheTTL  time.Duration
	ReportWindowDays  int
	ReportNATSSubject string
	AIProvider        string
	OpenAIAPIKey      string
	OpenAIModel       string
	AnthropicAPIKey   string
	SeedEnabled       bool
	SeedToken         string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LUDIKA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Ludika API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("progress.cache_ttl", "5m")
	v.SetDefault("report.window_days", 7)
	v.SetDefault("report.nats_subject", "ludika.report.generated")
	v.SetDefault("ai.provider", "openai")

	ttlString := v.GetString("progress.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid progress cache ttl: %w", err)
	}

	windowDays := v.GetInt("report.window_days")
	if windowDays <= 0 {
		windowDays = 7
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		ProgressCacheTTL:  ttl,
		ReportWindowDays:  windowDays,
		ReportNATSSubject: v.GetString("report.nats_subject"),
		AIProvider:        strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:      v.GetString("openai_api_key"),
		OpenAIModel:       v.GetString("openai_model"),
		AnthropicAPIKey:   v.GetString("anthropic_api_key"),
		SeedEnabled:       v.GetBool("seed.enabled"),
		SeedToken:         v.GetString("seed.token"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
