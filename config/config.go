// config.go - Handles configuration for the project

package config // Declares the package name

import ( // Import required packages
	"os"      // For reading environment variables
	"strconv" // For numeric and boolean values
	"strings" // For list values
	"time"    // For durations
)

type Config struct { // Config struct holds all configuration values
	HTTPAddr        string        // Address the HTTP server listens on
	ShutdownTimeout time.Duration // Grace period for in-flight requests

	DBDriver    string // sqlite or postgres
	DBPath      string // Path to the SQLite database file
	DatabaseURL string // Postgres DSN (used when DBDriver is postgres)

	JWTSecret string        // Secret key for JWT signing
	JWTIssuer string        // Issuer claim written into tokens
	TokenTTL  time.Duration // How long an issued token stays valid

	MQTTBroker         string        // Address of the MQTT broker (empty disables events)
	MQTTClientID       string        // Client id used when connecting
	MQTTTopicPrefix    string        // Prefix for catalog event topics
	MQTTPublishTimeout time.Duration // Longest a write waits for its event ack

	AdminEmail             string // Seeded admin account
	AdminPassword          string
	SalesManagerEmail      string // Seeded sales manager account
	SalesManagerPassword   string
	ProductManagerEmail    string // Seeded product manager account
	ProductManagerPassword string

	StrictCategories bool     // Reject products whose category does not exist
	LoginRateLimit   string   // ulule limiter format, e.g. "20-M"
	CORSOrigins      []string // Allowed browser origins

	LogLevel string // debug, info, warn, error
	LogJSON  bool   // JSON log output
}

func Load() *Config { // Load reads config from environment variables or uses defaults
	return &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 15*time.Second),

		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBPath:      getEnv("DB_PATH", "data.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", "supersecret"),
		JWTIssuer: getEnv("JWT_ISSUER", "go-catalog-backend"),
		TokenTTL:  getDuration("TOKEN_TTL", 72*time.Hour), // Same lifetime the login handler always used

		MQTTBroker:         getEnv("MQTT_BROKER", ""),
		MQTTClientID:       getEnv("MQTT_CLIENT_ID", "catalog-backend"),
		MQTTTopicPrefix:    getEnv("MQTT_TOPIC_PREFIX", "catalog"),
		MQTTPublishTimeout: getDuration("MQTT_PUBLISH_TIMEOUT", 3*time.Second),

		AdminEmail:             getEnv("ADMIN_EMAIL", ""),
		AdminPassword:          getEnv("ADMIN_PASSWORD", ""),
		SalesManagerEmail:      getEnv("SALES_MANAGER_EMAIL", ""),
		SalesManagerPassword:   getEnv("SALES_MANAGER_PASSWORD", ""),
		ProductManagerEmail:    getEnv("PRODUCT_MANAGER_EMAIL", ""),
		ProductManagerPassword: getEnv("PRODUCT_MANAGER_PASSWORD", ""),

		StrictCategories: getBool("STRICT_CATEGORIES", true),
		LoginRateLimit:   getEnv("LOGIN_RATE_LIMIT", "20-M"),
		CORSOrigins:      getList("CORS_ORIGINS", []string{"http://localhost:3000"}),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getBool("LOG_JSON", false),
	}
}

func getEnv(key, fallback string) string { // Helper to get env var or fallback
	if value := os.Getenv(key); value != "" { // If env var is set, use it
		return value
	}
	return fallback // Otherwise, use fallback value
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

// getDuration accepts Go duration strings ("90m", "72h").
func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
