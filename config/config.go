package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultSessionTTL = 8 * time.Hour

	// DevSecret is the signing secret used when ENV=dev and no
	// AUTH_SECRET is set. It must never reach a production posture;
	// server startup refuses it outside dev.
	DevSecret = "dev-secret"
)

type Config struct {
	ServerPort int
	Env        string
	Database   DatabaseConfig
	Auth       AuthConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

// AuthConfig carries the session-signing secret and password policy
// toggles for the credential manager.
type AuthConfig struct {
	// Secret signs session tokens. Required outside dev.
	Secret string

	// SessionTTL bounds both the token expiry claim and the cookie
	// max-age.
	SessionTTL time.Duration

	// AllowLegacyPlaintext enables the deprecated plaintext-equality
	// fallback for password rows that predate scrypt hashing. Leave
	// off unless migrating an old database.
	AllowLegacyPlaintext bool
}

func Load() Config {
	env := getEnv("ENV", "")
	if env == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "bnn"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "bnn_db"),
		UseSSL:   getEnvBool("DB_SSL", false),
	}

	authConfig := AuthConfig{
		Secret:               getEnv("AUTH_SECRET", ""),
		SessionTTL:           getEnvDuration("SESSION_TTL", defaultSessionTTL),
		AllowLegacyPlaintext: getEnvBool("AUTH_ALLOW_PLAINTEXT", false),
	}
	if authConfig.Secret == "" && env == "dev" {
		authConfig.Secret = DevSecret
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		Env:        env,
		Database:   dbConfig,
		Auth:       authConfig,
	}
}

// URL renders the postgres DSN for database/sql and golang-migrate.
func (c DatabaseConfig) URL() string {
	sslmode := "disable"
	if c.UseSSL {
		sslmode = "require"
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		User:   url.UserPassword(c.User, c.Password),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
