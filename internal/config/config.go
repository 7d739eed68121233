package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries the server-side settings. Values come from the environment;
// defaults cover local development except for the database URL, which is
// always required.
type Config struct {
	ServerAddr  string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
	StorageDir  string
	UploadsURL  string
}

// ClientConfig carries what the gateway client needs to reach the backend:
// one endpoint and one API key. Their absence is a fatal configuration error.
type ClientConfig struct {
	APIBaseURL string
	APIKey     string
}

func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("jwt_secret", "dev-secret")
	v.SetDefault("storage_dir", "./uploads")
	v.SetDefault("uploads_url", "/uploads")
	v.AutomaticEnv()

	cfg := Config{
		ServerAddr:  v.GetString("server_addr"),
		DatabaseURL: v.GetString("database_url"),
		RedisAddr:   v.GetString("redis_addr"),
		JWTSecret:   v.GetString("jwt_secret"),
		StorageDir:  v.GetString("storage_dir"),
		UploadsURL:  v.GetString("uploads_url"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("environment variable DATABASE_URL not found")
	}
	return cfg, nil
}

func LoadClient() (ClientConfig, error) {
	v := viper.New()
	v.AutomaticEnv()

	cfg := ClientConfig{
		APIBaseURL: v.GetString("catalog_api_url"),
		APIKey:     v.GetString("catalog_api_key"),
	}

	if cfg.APIBaseURL == "" || cfg.APIKey == "" {
		return ClientConfig{}, fmt.Errorf("CATALOG_API_URL and CATALOG_API_KEY must both be set")
	}
	return cfg, nil
}
