package config

import (
	"fmt"
	"os"
)

// DatabaseConfig points at the optional MySQL catalog. An empty DSN means
// the built-in catalog is served.
type DatabaseConfig struct {
	DSN string `yaml:"-"`
}

// Enabled reports whether a database DSN is configured
func (d DatabaseConfig) Enabled() bool {
	return d.DSN != ""
}

func (d *DatabaseConfig) applyEnv() {
	d.DSN = GetDatabaseDSN()
}

// GetDatabaseDSN returns the database connection string.
// The DB_* variables take precedence over DATABASE_DSN.
func GetDatabaseDSN() string {
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_NAME")

	if user != "" && password != "" && host != "" && port != "" && database != "" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, password, host, port, database)
	}

	return os.Getenv("DATABASE_DSN")
}
