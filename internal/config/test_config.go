package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration from the .env file or environment variables for integration tests
// If .env file doesn't exist or environment variables are not set, returns a Config with empty values
// which allows tests to use fallback DSN values
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Database.Host = os.Getenv("TEST_DB_HOST")
	if cfg.Database.Host == "" {
		// Return empty config to allow fallback DSN in tests
		return cfg, nil
	}

	port, err := intEnv("TEST_DB_PORT", "3306")
	if err != nil {
		return nil, err
	}
	cfg.Database.Port = port
	cfg.Database.User = os.Getenv("TEST_DB_USER")
	cfg.Database.Password = os.Getenv("TEST_DB_PASSWORD")
	cfg.Database.DBName = os.Getenv("TEST_DB_NAME")

	return cfg, nil
}

// TestDSN returns the configured DSN, or "" when no test database is configured
func (c *Config) TestDSN() string {
	if c.Database.Host == "" {
		return ""
	}
	return c.DSN()
}
