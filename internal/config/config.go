package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the company-wide shift policy defaults. Employees
// without a shift of their own fall back to these clocks.
type AttendanceConfig struct {
	DefaultTimezone string
	ShiftStart      string
	ShiftEnd        string

	// GraceMinutes past shift start before a check-in counts as late.
	GraceMinutes int
	// HalfDayAfterMinutes past the grace limit before a late arrival
	// escalates to half-day.
	HalfDayAfterMinutes int
	// AbsentAfterMinutes past the grace limit before an arrival counts
	// as absent.
	AbsentAfterMinutes int

	// SweepInterval is how often the end-of-day jobs wake up.
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	// Absence of a .env file is fine in deployed environments.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "orgdesk"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy configuration
	graceMinutes, err := strconv.Atoi(getEnv("ATTENDANCE_GRACE_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_GRACE_MINUTES: %w", err)
	}
	halfDayAfter, err := strconv.Atoi(getEnv("ATTENDANCE_HALF_DAY_AFTER_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_HALF_DAY_AFTER_MINUTES: %w", err)
	}
	absentAfter, err := strconv.Atoi(getEnv("ATTENDANCE_ABSENT_AFTER_MINUTES", "150"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_ABSENT_AFTER_MINUTES: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("ATTENDANCE_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_SWEEP_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		DefaultTimezone:     getEnv("ATTENDANCE_DEFAULT_TIMEZONE", "UTC"),
		ShiftStart:          getEnv("ATTENDANCE_SHIFT_START", "09:00"),
		ShiftEnd:            getEnv("ATTENDANCE_SHIFT_END", "17:00"),
		GraceMinutes:        graceMinutes,
		HalfDayAfterMinutes: halfDayAfter,
		AbsentAfterMinutes:  absentAfter,
		SweepInterval:       sweepInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.GraceMinutes < 0 {
		return fmt.Errorf("ATTENDANCE_GRACE_MINUTES must not be negative")
	}
	if c.Attendance.HalfDayAfterMinutes <= 0 {
		return fmt.Errorf("ATTENDANCE_HALF_DAY_AFTER_MINUTES must be positive")
	}
	if c.Attendance.AbsentAfterMinutes <= c.Attendance.HalfDayAfterMinutes {
		return fmt.Errorf("ATTENDANCE_ABSENT_AFTER_MINUTES must exceed ATTENDANCE_HALF_DAY_AFTER_MINUTES")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
