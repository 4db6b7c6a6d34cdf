package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port               string
	Origin             string
	Environment        string
	JWTSecret          string
	JWTExpirationHours int
	Database           DatabaseConfig
	Admin              AdminConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
	DSN      string
}

// AdminConfig holds the credentials of the shared office account seeded at startup.
type AdminConfig struct {
	Username string
	Password string
	Name     string
	Email    string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		Username: getEnv("DB_USERNAME", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "consultorio"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Build DSN (Data Source Name) for the PostgreSQL connection
	dbConfig.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host, dbConfig.Port, dbConfig.Username, dbConfig.Password, dbConfig.Name, dbConfig.SSLMode)

	adminConfig := AdminConfig{
		Username: getEnv("ADMIN_USERNAME", "consultorio"),
		Password: getEnv("ADMIN_PASSWORD", ""),
		Name:     getEnv("ADMIN_NAME", "Consultorio"),
		Email:    getEnv("ADMIN_EMAIL", ""),
	}

	jwtExpHours, err := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:               getEnv("PORT", "3001"),
		Origin:             getEnv("ORIGIN", "http://localhost:5173"),
		Environment:        getEnv("APP_ENV", "development"),
		JWTSecret:          getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationHours: jwtExpHours,
		Database:           dbConfig,
		Admin:              adminConfig,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
