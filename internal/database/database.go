// Package database builds the PostgreSQL pool and hands out scoped connections.
package database

import (
	"context"
	"fmt"
	"time"

	"postapi/internal/config"
	"postapi/internal/middleware"
	"postapi/internal/observability"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the PostgreSQL connection string for cfg.
func DSN(cfg *config.Config) string {
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		sslMode,
	)
}

// GormConfig is the configuration shared by every gorm.DB the service opens.
// Driver errors are left untranslated so their messages reach the caller.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: NewGormLogger(middleware.Logger, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
		SkipDefaultTransaction: true,
		// The service must start while the store is down so /health can report it.
		DisableAutomaticPing: true,
	}
}

// Connect opens the connection pool described by cfg.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := configurePool(db, cfg); err != nil {
		return nil, err
	}

	middleware.Logger.Info("Database pool configured",
		"host", cfg.DBHost,
		"database", cfg.DBName,
		"max_open_conns", cfg.DBMaxOpenConns,
	)
	return db, nil
}

func configurePool(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMinutes) * time.Minute)
	return nil
}

// WithConn runs fn on one connection taken from the pool and returns it to the
// pool when fn returns, on every path. A failure to obtain the connection is
// returned as is.
func WithConn(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Connection(fn)
}

// Acquire obtains a connection and releases it immediately without issuing a query.
func Acquire(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		observability.DatabaseAcquireFailures.Inc()
		return err
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		observability.DatabaseAcquireFailures.Inc()
		return err
	}
	return conn.Close()
}

// Close releases every pooled connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
