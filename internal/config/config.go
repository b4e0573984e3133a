// Package config loads s3sync configuration from a YAML file, S3SYNC_*
// environment variables, and built-in defaults, in ascending precedence of
// env over file over defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "S3SYNC"

// Config is the full configuration for both binaries.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Client ClientConfig `mapstructure:"client"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig configures the authorization backend.
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
	// PresignTTL bounds the validity of issued transfer URLs.
	PresignTTL time.Duration `mapstructure:"presign_ttl"`
}

// StoreConfig configures the S3-compatible object store connection.
type StoreConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// ClientConfig configures the CLI's connection to the backend.
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path (or the default candidates when path is
// empty), layered with env vars and defaults.
func Load(path string) (*Config, error) {
	vp := viper.New()
	vp.SetEnvPrefix(envPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	setDefaults(vp)

	resolved := resolveConfigPath(path)
	if resolved != "" {
		vp.SetConfigFile(resolved)
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := vp.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func resolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	if envPath := os.Getenv(envPrefix + "_CONFIG"); envPath != "" {
		return envPath
	}
	for _, c := range []string{"s3sync.yaml", "s3sync.yml"} {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func setDefaults(vp *viper.Viper) {
	vp.SetDefault("server.listen", ":8080")
	vp.SetDefault("server.presign_ttl", time.Hour)
	vp.SetDefault("store.endpoint", "localhost:9000")
	vp.SetDefault("store.bucket", "s3sync")
	vp.SetDefault("store.use_ssl", false)
	vp.SetDefault("client.base_url", "http://localhost:8080")
	vp.SetDefault("client.timeout", 30*time.Second)
	vp.SetDefault("log.level", "info")
	vp.SetDefault("log.format", "json")
}
