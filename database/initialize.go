package database

import (
	"context"
	"fmt"
	"os"

	"member-profile/config"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/db"
	"github.com/umakantv/go-utils/db/migrations"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

const createMemberTableSQL = `
CREATE TABLE IF NOT EXISTS member (
	iid   INTEGER PRIMARY KEY AUTOINCREMENT,
	nm    TEXT NOT NULL,
	birth TEXT NOT NULL DEFAULT '',
	blood TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	idno  TEXT NOT NULL,
	pwd   TEXT NOT NULL
);`

func InitializeDatabase(cfg config.Config) *sqlx.DB {
	// Database configuration for SQLite
	dbConfig := db.DatabaseConfig{
		DRIVER: "sqlite3",
		DB:     cfg.DBPath,
	}

	dbConn := db.GetDBConnection(dbConfig)
	ConfigureConnections(dbConn)

	if err := EnsureSchema(context.Background(), dbConn); err != nil {
		logger.Error("Error while creating member table", zap.Error(err))
		os.Exit(1)
	}

	if cfg.MigrationsDir != "" {
		if err := migrations.Migrate(dbConn, cfg.MigrationsDir); err != nil {
			logger.Error("Error while running migration", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("Database initialized successfully", zap.String("path", cfg.DBPath))
	return dbConn
}

// ConfigureConnections disables idle pooling so that a connection released
// at the end of a request is physically closed.
func ConfigureConnections(dbConn *sqlx.DB) {
	dbConn.SetMaxIdleConns(0)
}

// EnsureSchema creates the member table when it does not exist yet.
func EnsureSchema(ctx context.Context, dbConn *sqlx.DB) error {
	if _, err := dbConn.ExecContext(ctx, createMemberTableSQL); err != nil {
		return fmt.Errorf("failed to create member table: %w", err)
	}
	return nil
}
