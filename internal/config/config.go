package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is not set. There is no fallback.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	JWTSecret    string
	CookieSecure bool
	CORSOrigins  []string
	SwaggerHost  string
	LogLevel     string

	KafkaBrokers      []string
	KafkaContactTopic string
	KafkaBlogTopic    string

	OTLPEndpoint string
	ServiceName  string

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Load builds Config from the environment, reading a .env file first when present.
func Load() (*Config, error) {
	cfg := load()
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

// LoadSeed is Load for the seeder, which never signs tokens and so does not
// need JWT_SECRET.
func LoadSeed() *Config {
	return load()
}

func load() *Config {
	// Missing .env is fine; real environment variables win over it.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/portfolio?charset=utf8mb4&parseTime=True&loc=UTC"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CookieSecure:      getEnvBool("COOKIE_SECURE", false),
		CORSOrigins:       getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		KafkaBrokers:      getEnvList("KAFKA_BROKERS", nil),
		KafkaContactTopic: getEnv("KAFKA_CONTACT_TOPIC", "contact.submitted"),
		KafkaBlogTopic:    getEnv("KAFKA_BLOG_TOPIC", "blog.published"),
		OTLPEndpoint:      os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:       getEnv("OTEL_SERVICE_NAME", "portfolio-api"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
