package config

import (
	"os"
	"strconv"
	"time"
)

// SMS failure policies for clock-in.
const (
	SMSPolicyBestEffort = "best_effort"
	SMSPolicyRollback   = "rollback"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Security  SecurityConfig
	SMS       SMSConfig
	Geofence  GeofenceConfig
	ClockIn   ClockInConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	Env     string
	BaseURL string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SecurityConfig holds security encryption keys
type SecurityConfig struct {
	SessionEncryptionKey string
}

// SMSConfig holds Twilio credentials and the sender number
type SMSConfig struct {
	AccountSID string
	AuthToken  string
	FromPhone  string
}

// Enabled reports whether enough credentials are present to reach Twilio.
func (c SMSConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromPhone != ""
}

// GeofenceConfig holds the planar distance approximation constants
type GeofenceConfig struct {
	MilesPerDegree   float64
	MaxDistanceMiles float64
}

// ClockInConfig holds clock-in workflow tuning
type ClockInConfig struct {
	SMSPolicy           string
	LockTTL             time.Duration
	VerificationCodeTTL time.Duration
	SweepInterval       time.Duration
	MaxVerifyAttempts   int
}

// AuthConfig holds invite and magic link settings
type AuthConfig struct {
	MagicLinkTTL time.Duration
}

// RateLimitConfig holds per-client throttling budget
type RateLimitConfig struct {
	RequestsPerMinute int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("SERVER_PORT", "8080"),
			Env:     getEnv("SERVER_ENV", "development"),
			BaseURL: getEnv("BASE_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "timecard"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			SessionEncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
		},
		SMS: SMSConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromPhone:  getEnv("TWILIO_PHONE", ""),
		},
		Geofence: GeofenceConfig{
			MilesPerDegree:   getEnvAsFloat("GEOFENCE_MILES_PER_DEGREE", 69),
			MaxDistanceMiles: getEnvAsFloat("GEOFENCE_MAX_DISTANCE_MILES", 0.1),
		},
		ClockIn: ClockInConfig{
			SMSPolicy:           getEnvAsOneOf("CLOCK_IN_SMS_POLICY", SMSPolicyBestEffort, SMSPolicyBestEffort, SMSPolicyRollback),
			LockTTL:             getEnvAsDuration("CLOCK_IN_LOCK_TTL", 10*time.Second),
			VerificationCodeTTL: getEnvAsDuration("VERIFICATION_CODE_TTL", 15*time.Minute),
			SweepInterval:       getEnvAsDuration("SWEEP_INTERVAL", time.Minute),
			MaxVerifyAttempts:   getEnvAsInt("VERIFY_MAX_ATTEMPTS", 5),
		},
		Auth: AuthConfig{
			MagicLinkTTL: getEnvAsDuration("MAGIC_LINK_TTL", time.Hour),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsOneOf falls back to defaultValue when the variable holds anything outside allowed.
func getEnvAsOneOf(key, defaultValue string, allowed ...string) string {
	value := os.Getenv(key)
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return defaultValue
}
