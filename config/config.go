package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	AppEnv          string
	Addr            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// IsDevelopment reports whether the service runs in a local development setup.
func (s ServerConfig) IsDevelopment() bool {
	return s.AppEnv == "development" || s.AppEnv == "dev"
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

// DSN returns DATABASE_URL when set, otherwise a URL built from the parts.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%s", p.Host, p.Port),
		Path:     p.DBName,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return u.String()
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:          getEnv("APP_ENV", "production"),
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:     getEnvInt("HTTP_READ_TIMEOUT", 15),
			WriteTimeout:    getEnvInt("HTTP_WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvInt("HTTP_SHUTDOWN_TIMEOUT", 10),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", ""),
			Encoding:          getEnv("LOGGER_ENCODING", ""),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "jewelry"),
			Password:        getEnv("POSTGRES_PASSWORD", "jewelry"),
			DBName:          getEnv("POSTGRES_DB", "jewelry_catalog"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
