package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/cognito-linker/pkg/logx"
)

// Config is the full runtime configuration, loaded from the environment.
type Config struct {
	AWS       AWSConfig
	PreSignup PreSignupConfig
	Notifx    NotifxConfig
	Server    ServerConfig
}

// AWSConfig configures the AWS SDK clients.
type AWSConfig struct {
	Region string
	// CognitoEndpoint overrides the Cognito endpoint, e.g. a local emulator.
	CognitoEndpoint string
}

// ServerConfig configures the local dev server.
type ServerConfig struct {
	Port    string
	Version string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			CognitoEndpoint: getEnv("COGNITO_ENDPOINT", ""),
		},
		PreSignup: loadPreSignupConfig(),
		Notifx:    loadNotifxConfig(),
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		logx.Warnf("config: %s=%q is not a boolean, using %t", key, value, fallback)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logx.Warnf("config: %s=%q is not a duration, using %s", key, value, fallback)
		return fallback
	}
	return d
}

// getEnvStringMap parses "k1=v1,k2=v2". Malformed pairs are skipped.
func getEnvStringMap(key string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(os.Getenv(key), ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}
