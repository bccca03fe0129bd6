package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/NeuraX-HQ/neurax-web-app/config"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

const (
	connectRetries = 10
	retryDelay     = 2 * time.Second
)

// Connect opens postgres through gorm, retrying while the server comes up.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var lastErr error
	for i := 0; i < connectRetries; i++ {
		gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormLogger,
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
			PrepareStmt: true,
		})
		if err == nil {
			sqlDB, derr := gdb.DB()
			if derr == nil {
				if derr = sqlDB.PingContext(ctx); derr == nil {
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetMaxOpenConns(20)
					sqlDB.SetConnMaxLifetime(time.Hour)

					utils.Logger.Info("database_connected",
						zap.String("host", cfg.Host),
						zap.String("port", cfg.Port),
					)
					return gdb, nil
				}
			}
			err = derr
		}
		lastErr = err

		utils.Logger.Warn("database_waiting",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", connectRetries),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return nil, fmt.Errorf("connect to database after %d attempts: %w", connectRetries, lastErr)
}
