// Package database opens the MySQL pool and applies schema migrations
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationsTable keeps this service's schema version apart from other services sharing the database
const MigrationsTable = "embed_schema_migrations"

// PoolConfig sizes the connection pool
type PoolConfig struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// APIPool is sized for request handling, WorkerPool for the event worker
var (
	APIPool    = PoolConfig{MaxOpen: 25, MaxIdle: 5, MaxLifetime: 5 * time.Minute}
	WorkerPool = PoolConfig{MaxOpen: 10, MaxIdle: 5, MaxLifetime: 5 * time.Minute}
)

// Open connects to MySQL and verifies the connection
func Open(ctx context.Context, dsn string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// MigrationsSource returns the file source URL of the first existing directory
func MigrationsSource(dirs ...string) string {
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return "file://" + dir
		}
	}
	return "file://migrations"
}

// Migrate applies all pending up migrations from source
func Migrate(db *sql.DB, source string) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
