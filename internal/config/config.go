package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Notification backends
const (
	NotifyBackendLocal = "local"
	NotifyBackendRedis = "redis"
)

type Config struct {
	DBDriver           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	RedisHost          string
	RedisPort          string
	RedisNotifyChannel string
	NotifyBackend      string
	SessionSecret      string
	GinMode            string
	Port               string
	LogLevel           string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBUser:             getEnv("DB_USER", "gigsuser"),
		DBPassword:         getEnv("DB_PASSWORD", "gigspassword"),
		DBName:             getEnv("DB_NAME", "gig_marketplace"),
		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisNotifyChannel: getEnv("REDIS_NOTIFY_CHANNEL", "gigs:notifications"),
		NotifyBackend:      strings.ToLower(getEnv("NOTIFY_BACKEND", NotifyBackendLocal)),
		SessionSecret:      getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// RedisAddr returns the host:port pair shared by the session store and the
// notification relay.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// IsProduction reports whether the service runs in gin release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
