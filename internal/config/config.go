package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env           string
	Port          string
	DatabaseURL   string
	RedisURL      string
	SessionSecret string

	// AllowExpiredWithdraw lets a farmer withdraw a partially funded campaign
	// once its deadline has passed. This mirrors the original escrow policy;
	// set ALLOW_EXPIRED_WITHDRAW=false for strict goal-or-refund semantics.
	AllowExpiredWithdraw bool

	// WatchIntervalSeconds drives the refund-eligibility watch job. 0 disables it.
	WatchIntervalSeconds int
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" && viper.GetString("DATABASE_URL_TEST") != "" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	allowExpired := true
	if v := viper.GetString("ALLOW_EXPIRED_WITHDRAW"); v != "" {
		allowExpired = strings.EqualFold(v, "true")
	}

	interval := viper.GetInt("WATCH_INTERVAL_SECONDS")
	if interval == 0 && viper.GetString("WATCH_INTERVAL_SECONDS") == "" {
		interval = 60
	}

	return &Config{
		Env:                  env,
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             viper.GetString("REDIS_URL"),
		SessionSecret:        viper.GetString("SESSION_SECRET"),
		AllowExpiredWithdraw: allowExpired,
		WatchIntervalSeconds: interval,
	}, nil
}
