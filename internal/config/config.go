package config

import (
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
	"github.com/sirupsen/logrus"
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const defaultJWTSecret = "dev_secret"

// Config holds the application configuration
type Config struct {
	AppPort     string        // Application port
	DBDriver    string        // mysql, postgres or sqlite
	DBUser      string        // Database user
	DBPassword  string        // Database password
	DBHost      string        // Database host
	DBPort      string        // Database port
	DBName      string        // Database name
	DBPath      string        // SQLite file path
	JWTSecret   string        // JWT secret key
	JWTTTL      time.Duration // Token lifetime
	RedisAddr   string        // Redis server address, empty disables caching
	RedisPass   string        // Redis password
	RedisDB     int           // Redis database number
	CacheTTL    time.Duration // Dashboard cache lifetime
	CORSOrigins []string      // Allowed CORS origins
	LogLevel    string        // logrus level name
	IsProd      bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cfg := &Config{
		AppPort:     getenv("APP_PORT", "5000"),                        // Application port
		DBDriver:    strings.ToLower(getenv("DB_DRIVER", DriverMySQL)), // Database driver
		DBUser:      os.Getenv("DB_USER"),                              // Database user
		DBPassword:  os.Getenv("DB_PASSWORD"),                          // Database password
		DBHost:      getenv("DB_HOST", "localhost"),                    // Database host
		DBPort:      os.Getenv("DB_PORT"),                              // Database port
		DBName:      getenv("DB_NAME", "finance_tracker"),              // Database name
		DBPath:      getenv("DB_PATH", "finance_tracker.db"),           // SQLite file
		JWTSecret:   getenv("JWT_SECRET", defaultJWTSecret),            // JWT secret key
		JWTTTL:      getDuration("JWT_TTL", 7*24*time.Hour),            // Token lifetime
		RedisAddr:   os.Getenv("REDIS_ADDR"),                           // Redis server address
		RedisPass:   os.Getenv("REDIS_PASS"),                           // Redis password
		RedisDB:     redisDB,                                           // Redis database number
		CacheTTL:    getDuration("CACHE_TTL", 60*time.Second),          // Dashboard cache lifetime
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "*")),            // Allowed origins
		LogLevel:    getenv("LOG_LEVEL", "info"),                       // Log level
		IsProd:      os.Getenv("IS_PROD") == "true",                    // Is production environment
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"} // CORS_ORIGINS listed nothing
	}
	if cfg.JWTSecret == defaultJWTSecret {
		logrus.Warn("JWT_SECRET not set, using development secret")
	}
	return cfg
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() (string, error) {
	switch c.DBDriver {
	case DriverMySQL:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true&loc=UTC", nil
	case DriverPostgres:
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port), nil
	case DriverSQLite:
		return c.DBPath, nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
}

// SetupLogger configures the global logrus logger
func (c *Config) SetupLogger() {
	if c.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.WithField("level", c.LogLevel).Warn("unknown LOG_LEVEL, falling back to info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		logrus.WithFields(logrus.Fields{"key": key, "value": v}).Warn("invalid duration, using default")
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
