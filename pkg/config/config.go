package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port               string
	DatabaseURL        string
	AppEnv             string
	BaseURL            string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	JWTSecret          string
	AllowedEmails      []string
	FrontendURL        string
	LogLevel           string
	LogEncoding        string
	DiscoverCount      int
}

var defaults = map[string]interface{}{
	"port":                 "8080",
	"database_url":         "file:weblinks.sqlite",
	"app_env":              "local",
	"base_url":             "http://localhost:8080",
	"google_client_id":     "",
	"google_client_secret": "",
	"google_redirect_url":  "http://localhost:8080/auth/google/callback",
	"jwt_secret":           "secret",
	"allowed_emails":       "",
	"frontend_url":         "http://localhost:8080/",
	"log_level":            "info",
	"log_encoding":         "console",
	"discover_count":       5,
}

// Load reads .env, an optional config.yaml (in . or ./config) and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &Config{
		Port:               v.GetString("port"),
		DatabaseURL:        v.GetString("database_url"),
		AppEnv:             v.GetString("app_env"),
		BaseURL:            v.GetString("base_url"),
		GoogleClientID:     v.GetString("google_client_id"),
		GoogleClientSecret: v.GetString("google_client_secret"),
		GoogleRedirectURL:  v.GetString("google_redirect_url"),
		JWTSecret:          v.GetString("jwt_secret"),
		AllowedEmails:      splitList(v.GetString("allowed_emails")),
		FrontendURL:        v.GetString("frontend_url"),
		LogLevel:           v.GetString("log_level"),
		LogEncoding:        v.GetString("log_encoding"),
		DiscoverCount:      v.GetInt("discover_count"),
	}, nil
}

// AuthEnabled reports whether write routes require a Google login.
func (c *Config) AuthEnabled() bool {
	return c.GoogleClientID != ""
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
