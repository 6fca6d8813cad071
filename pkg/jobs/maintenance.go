package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/pkg/metrics"
)

// StaleProgressCleanupJob removes watch progress rows that have not been
// touched for longer than the retention window.
type StaleProgressCleanupJob struct {
	db            *gorm.DB
	retentionDays int
	logger        *slog.Logger
}

// NewStaleProgressCleanupJob creates a new watch progress cleanup job.
func NewStaleProgressCleanupJob(db *gorm.DB, retentionDays int, logger *slog.Logger) *StaleProgressCleanupJob {
	if retentionDays <= 0 {
		retentionDays = 365
	}
	return &StaleProgressCleanupJob{
		db:            db,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

func (j *StaleProgressCleanupJob) Name() string {
	return "stale_progress_cleanup"
}

// Execute deletes progress rows older than the retention window.
func (j *StaleProgressCleanupJob) Execute(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)

	result := j.db.WithContext(ctx).
		Exec("DELETE FROM watch_progresses WHERE updated_at < ?", cutoff)

	if result.Error != nil {
		return fmt.Errorf("failed to delete stale watch progress: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		j.logger.Info("removed stale watch progress entries",
			"count", result.RowsAffected,
			"retention_days", j.retentionDays)
	}

	return nil
}

// LicenseInventoryJob periodically counts licenses per status and exposes
// the totals as gauges, so the available pool can be alerted on.
type LicenseInventoryJob struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewLicenseInventoryJob creates a new license inventory job.
func NewLicenseInventoryJob(db *gorm.DB, logger *slog.Logger) *LicenseInventoryJob {
	return &LicenseInventoryJob{
		db:     db,
		logger: logger,
	}
}

func (j *LicenseInventoryJob) Name() string {
	return "license_inventory"
}

// Execute counts licenses by status and updates the inventory gauges.
func (j *LicenseInventoryJob) Execute(ctx context.Context) error {
	rows, err := j.db.WithContext(ctx).
		Raw("SELECT status, COUNT(*) FROM licenses GROUP BY status").
		Rows()
	if err != nil {
		return fmt.Errorf("failed to count licenses: %w", err)
	}
	defer rows.Close()

	var available, claimed int64
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			j.logger.Error("failed to scan license count row", "error", err)
			continue
		}

		switch status {
		case "available":
			available = count
		case "claimed":
			claimed = count
		}
	}

	metrics.SetLicenseInventory(available, claimed)

	j.logger.Debug("license inventory updated",
		"available", available,
		"claimed", claimed)

	return nil
}
