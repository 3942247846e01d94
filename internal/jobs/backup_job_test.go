package jobs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/abtweb/studio-api/internal/jobs"
	"github.com/abtweb/studio-api/internal/recordstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBackupJob_RunOnce(t *testing.T) {
	dir := t.TempDir()
	store, err := recordstore.OpenSQLite(filepath.Join(dir, "store.db"), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "quotesData", []string{"q1"}))

	job := jobs.NewBackupJob(store, filepath.Join(dir, "backups"), zap.NewNop())
	path, err := job.RunOnce(ctx)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snapshot map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.JSONEq(t, `["q1"]`, string(snapshot["quotesData"]))
}

func TestRegisterBackupJob_OffCadenceRegistersNothing(t *testing.T) {
	dir := t.TempDir()
	store, err := recordstore.OpenSQLite(filepath.Join(dir, "store.db"), zap.NewNop())
	require.NoError(t, err)

	scheduler := jobs.NewScheduler(zap.NewNop())
	err = jobs.RegisterBackupJob(scheduler, store, dir, staticCadence("off"), zap.NewNop())
	assert.NoError(t, err)
}

func TestRegisterBackupJob_UnknownCadenceFails(t *testing.T) {
	dir := t.TempDir()
	store, err := recordstore.OpenSQLite(filepath.Join(dir, "store.db"), zap.NewNop())
	require.NoError(t, err)

	scheduler := jobs.NewScheduler(zap.NewNop())
	err = jobs.RegisterBackupJob(scheduler, store, dir, staticCadence("hourly"), zap.NewNop())
	assert.Error(t, err)
}

type staticCadence string

func (c staticCadence) AutoBackup(context.Context) string { return string(c) }
