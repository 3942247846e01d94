package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abtweb/studio-api/internal/recordstore"
	"go.uber.org/zap"
)

// BackupJobName is the name of the record store backup job
const BackupJobName = "store_backup"

// backupTimeout bounds one backup run
const backupTimeout = 2 * time.Minute

// SettingsReader resolves the current auto-backup cadence without binding
// the job to the service package.
type SettingsReader interface {
	// AutoBackup returns "daily", "weekly", or "off".
	AutoBackup(ctx context.Context) string
}

// BackupJob snapshots the whole record store to a timestamped JSON file.
// One file per run; old snapshots are never pruned automatically.
type BackupJob struct {
	store  *recordstore.Store
	dir    string
	logger *zap.Logger
}

// NewBackupJob creates a backup job writing snapshots into dir.
func NewBackupJob(store *recordstore.Store, dir string, logger *zap.Logger) *BackupJob {
	return &BackupJob{store: store, dir: dir, logger: logger}
}

// Run executes one backup. Called by the scheduler.
func (j *BackupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("record store backup failed", zap.Error(err))
	}
}

// RunOnce dumps the store and writes one snapshot file, returning its path.
func (j *BackupJob) RunOnce(ctx context.Context) (string, error) {
	start := time.Now()

	records, err := j.store.Dump(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}

	path := filepath.Join(j.dir, fmt.Sprintf("backup-%s.json", start.Format("20060102-150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	j.logger.Info("record store backup written",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Duration("duration", time.Since(start)))
	return path, nil
}

// RegisterBackupJob schedules the backup job according to the saved settings.
// An "off" cadence registers nothing.
func RegisterBackupJob(scheduler *Scheduler, store *recordstore.Store, dir string, settings SettingsReader, logger *zap.Logger) error {
	cadence := settings.AutoBackup(context.Background())

	var cronExpr string
	switch cadence {
	case "daily":
		cronExpr = "0 0 3 * * *"
	case "weekly":
		cronExpr = "0 0 3 * * 0"
	case "off", "":
		logger.Info("auto-backup disabled by settings")
		return nil
	default:
		return fmt.Errorf("unknown auto-backup cadence %q", cadence)
	}

	job := NewBackupJob(store, dir, logger)
	return scheduler.AddJob(BackupJobName, cronExpr, job.Run)
}
