package db

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jrbgold/jrb-backend/config"
	appLogger "github.com/jrbgold/jrb-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize initializes the database connection.
// Postgres connections are retried with exponential backoff.
func Initialize(ctx context.Context, cfg *config.DatabaseConfig) error {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Use silent mode, we'll use our own logger
	}

	switch cfg.Driver {
	case "postgres":
		appLogger.Info("Connecting to database", map[string]interface{}{
			"driver":   cfg.Driver,
			"host":     cfg.Host,
			"port":     cfg.Port,
			"database": cfg.DBName,
			"user":     cfg.User,
		})

		retryPolicy := backoff.NewExponentialBackOff()
		retryPolicy.MaxElapsedTime = 2 * time.Minute
		retryPolicy.MaxInterval = 15 * time.Second

		var conn *gorm.DB
		err := backoff.RetryNotify(
			func() error {
				var err error
				conn, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
				if err != nil {
					return fmt.Errorf("connect: %w", err)
				}
				sqlDB, err := conn.DB()
				if err != nil {
					return backoff.Permanent(err)
				}
				if err := sqlDB.PingContext(ctx); err != nil {
					_ = sqlDB.Close()
					return fmt.Errorf("ping: %w", err)
				}
				return nil
			},
			backoff.WithContext(retryPolicy, ctx),
			func(err error, next time.Duration) {
				appLogger.Warn("Database connection failed, retrying", map[string]interface{}{
					"error":           err.Error(),
					"next_attempt_in": next.String(),
				})
			},
		)
		if err != nil {
			return fmt.Errorf("failed to connect to database after retries: %w", err)
		}
		DB = conn

		sqlDB, err := DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get database instance: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)

	case "sqlite", "":
		appLogger.Info("Opening SQLite database", map[string]interface{}{
			"path": cfg.Path,
		})

		var err error
		DB, err = gorm.Open(sqlite.Open(cfg.Path), gormCfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		sqlDB, err := DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get database instance: %w", err)
		}
		// in-memory databases live only as long as one connection holds them
		sqlDB.SetMaxOpenConns(1)

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	appLogger.Info("Database connection established successfully", map[string]interface{}{
		"driver": cfg.Driver,
	})
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
