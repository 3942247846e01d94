// Package remote implements the optional remote quote collection. It is a
// mirror, not the system of record: reads prefer it when reachable and fall
// back to the local record store, writes are best-effort, and the service
// starts and runs fine without it.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/abtweb/studio-api/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// QuoteDocument is one mirrored quote, stored as an opaque JSON document.
type QuoteDocument struct {
	ID        string `gorm:"primaryKey;size:64"`
	Data      string
	CreatedAt time.Time
}

// TableName sets the remote collection name.
func (QuoteDocument) TableName() string {
	return "quotes"
}

// Mirror is a connected remote quote collection. A nil *Mirror is a valid
// disabled mirror: all methods are safe to call on it.
type Mirror struct {
	db     *gorm.DB
	cfg    *config.RemoteConfig
	logger *zap.Logger
}

// NewMirror connects to the remote quote collection. Returns (nil, nil) when
// the mirror is disabled by configuration; a connection failure is returned
// to the caller, which logs it and continues local-only.
func NewMirror(cfg *config.RemoteConfig, logger *zap.Logger) (*Mirror, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(cfg.ConnectionString()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to remote quote store: %w", err)
	}
	if err := db.AutoMigrate(&QuoteDocument{}); err != nil {
		return nil, fmt.Errorf("failed to migrate remote quote store: %w", err)
	}

	return &Mirror{db: db, cfg: cfg, logger: logger}, nil
}

// Enabled reports whether the mirror is connected.
func (m *Mirror) Enabled() bool {
	return m != nil && m.db != nil
}

// ListRaw returns all mirrored quote documents, newest first by creation
// time.
func (m *Mirror) ListRaw(ctx context.Context) ([]json.RawMessage, error) {
	if !m.Enabled() {
		return nil, fmt.Errorf("remote quote store not connected")
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.QueryTimeoutDuration())
	defer cancel()

	var docs []QuoteDocument
	if err := m.db.WithContext(ctx).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list remote quotes: %w", err)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	out := make([]json.RawMessage, 0, len(docs))
	for _, doc := range docs {
		out = append(out, json.RawMessage(doc.Data))
	}
	return out, nil
}

// Save upserts one quote document. Best-effort: callers log failures and
// proceed with the local write.
func (m *Mirror) Save(ctx context.Context, id string, createdAt time.Time, data []byte) error {
	if !m.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.QueryTimeoutDuration())
	defer cancel()

	doc := QuoteDocument{ID: id, Data: string(data), CreatedAt: createdAt}
	err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to mirror quote %s: %w", id, err)
	}
	return nil
}

// Delete removes one quote document. Best-effort like Save.
func (m *Mirror) Delete(ctx context.Context, id string) error {
	if !m.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.QueryTimeoutDuration())
	defer cancel()

	if err := m.db.WithContext(ctx).Delete(&QuoteDocument{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete mirrored quote %s: %w", id, err)
	}
	return nil
}
