package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Supported database drivers
const (
	DriverMySQL = "mysql"
	DriverMongo = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Jobs     JobsConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	MongoURI string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// JobsConfig holds background job configuration
type JobsConfig struct {
	ReconcileSchedule string
	LivenessSchedule  string
	TimeZone          string
	HealthURL         string
	PingTimeout       time.Duration
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	port := getEnv("PORT", "4000")

	cfg := &Config{
		AppMode:  appMode,
		Port:     port,
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Jobs:     loadJobsConfig(port),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s, DB: %s]", appMode, cfg.Database.Driver)
	return cfg, nil
}

// Validate checks values that would otherwise fail late at runtime
func (c *Config) Validate() error {
	var problems []string

	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got: %s", c.Port))
	}

	if c.Database.Driver != DriverMySQL && c.Database.Driver != DriverMongo {
		problems = append(problems, fmt.Sprintf("DB_DRIVER must be '%s' or '%s', got: %s", DriverMySQL, DriverMongo, c.Database.Driver))
	}

	if c.JWT.Secret == "" {
		problems = append(problems, "JWT secret must not be empty")
	}
	if c.JWT.RefreshSecret == "" {
		problems = append(problems, "JWT refresh secret must not be empty")
	}
	if c.IsProd() {
		if c.JWT.Secret == defaultJWTSecret {
			problems = append(problems, "PROD_JWT_SECRET must be set in prod mode")
		}
		if c.JWT.RefreshSecret == defaultRefreshSecret {
			problems = append(problems, "PROD_JWT_REFRESH_SECRET must be set in prod mode")
		}
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Jobs.ReconcileSchedule); err != nil {
		problems = append(problems, fmt.Sprintf("RECONCILE_SCHEDULE is invalid: %v", err))
	}
	if _, err := parser.Parse(c.Jobs.LivenessSchedule); err != nil {
		problems = append(problems, fmt.Sprintf("LIVENESS_SCHEDULE is invalid: %v", err))
	}

	if _, err := time.LoadLocation(c.Jobs.TimeZone); err != nil {
		problems = append(problems, fmt.Sprintf("JOB_TIMEZONE is invalid: %v", err))
	}

	if c.Jobs.PingTimeout <= 0 {
		problems = append(problems, "LIVENESS_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Driver:   strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", DriverMySQL))),
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "turfbook"),
		MongoURI: getEnv(prefix+"MONGO_URI", "mongodb://localhost:27017"),
	}
}

// Development fallbacks; prod mode refuses to start with them
const (
	defaultJWTSecret     = "default_secret"
	defaultRefreshSecret = "default_refresh_secret"
)

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "10"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", defaultJWTSecret),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", defaultRefreshSecret),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := modePrefix(mode)

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadJobsConfig loads cron job config; the health URL defaults to the local listener
func loadJobsConfig(port string) JobsConfig {
	timeout, err := time.ParseDuration(getEnv("LIVENESS_TIMEOUT", "5s"))
	if err != nil {
		timeout = 0
	}

	return JobsConfig{
		ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", "*/5 * * * *"),
		LivenessSchedule:  getEnv("LIVENESS_SCHEDULE", "*/5 * * * *"),
		TimeZone:          getEnv("JOB_TIMEZONE", "Asia/Kolkata"),
		HealthURL:         getEnv("HEALTH_URL", "http://localhost:"+port+"/health"),
		PingTimeout:       timeout,
	}
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// Location returns the time zone used for job schedules and expiry checks
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Jobs.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return origins
}
