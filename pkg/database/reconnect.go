package database

import (
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
)

// ReconnectPlugin is a GORM plugin that pings the pool before each operation and
// waits out transient connection loss instead of failing the query immediately.
type ReconnectPlugin struct {
	logger         *slog.Logger
	maxRetries     int
	retryDelay     time.Duration
	reconnectCount atomic.Int64
}

// NewReconnectPlugin creates a new reconnect plugin.
func NewReconnectPlugin(logger *slog.Logger) *ReconnectPlugin {
	return &ReconnectPlugin{
		logger:     logger,
		maxRetries: 3,
		retryDelay: 500 * time.Millisecond,
	}
}

func (p *ReconnectPlugin) Name() string {
	return "reconnect_plugin"
}

func (p *ReconnectPlugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("reconnect:before_query", p.checkConnection); err != nil {
		return err
	}
	if err := db.Callback().Create().Before("gorm:create").Register("reconnect:before_create", p.checkConnection); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("reconnect:before_update", p.checkConnection); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("reconnect:before_delete", p.checkConnection); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("reconnect:before_row", p.checkConnection); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("reconnect:before_raw", p.checkConnection); err != nil {
		return err
	}

	return nil
}

func (p *ReconnectPlugin) checkConnection(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	if err := sqlDB.Ping(); err != nil && p.isConnectionError(err) {
		p.logger.Warn("database connection lost, attempting to reconnect",
			slog.String("error", err.Error()),
		)

		if p.waitForConnection(sqlDB) {
			p.logger.Info("database reconnection successful",
				slog.Int64("total_reconnects", p.reconnectCount.Load()),
			)
		} else {
			p.logger.Error("database reconnection failed after retries")
		}
	}
}

func (p *ReconnectPlugin) isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	patterns := []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"network is unreachable",
		"connection timed out",
		"eof",
		"bad connection",
		"invalid connection",
		"closed network connection",
		"server closed",
	}

	for _, pattern := range patterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

func (p *ReconnectPlugin) waitForConnection(sqlDB *sql.DB) bool {
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		time.Sleep(p.retryDelay * time.Duration(attempt))

		if err := sqlDB.Ping(); err == nil {
			p.reconnectCount.Add(1)
			return true
		}

		p.logger.Warn("reconnection attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_retries", p.maxRetries),
		)
	}

	return false
}

// ReconnectCount returns the total number of successful reconnections.
func (p *ReconnectPlugin) ReconnectCount() int64 {
	return p.reconnectCount.Load()
}
