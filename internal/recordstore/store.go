// Package recordstore implements the durable key-value record store backing
// the quote, customer, project, and settings collections. Each record is one
// string key holding a JSON document; writes replace the whole value and bump
// a revision counter used by the cross-process polling fallback. In-process
// listeners are notified synchronously through the change bus.
package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abtweb/studio-api/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	// ErrKeyNotFound is returned when no record exists under the key.
	ErrKeyNotFound = errors.New("record key not found")
	// ErrMalformedRecord is returned when a stored value fails to parse.
	// Callers loading collections treat the collection as empty instead of
	// failing the operation.
	ErrMalformedRecord = errors.New("malformed record")
)

// Record is one persisted key-value row.
type Record struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string
	Revision  int64
	UpdatedAt time.Time
}

// TableName sets the record table name.
func (Record) TableName() string {
	return "records"
}

// Store is the durable record store. All collection reads and writes in the
// application go through it.
type Store struct {
	db     *gorm.DB
	bus    *Bus
	logger *zap.Logger
}

// Open connects the record store using the configured driver and runs the
// schema migration.
func Open(cfg *config.StoreConfig, logger *zap.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "sqlite", "":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.Driver == "postgres" {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())
	} else {
		// sqlite: a single writer connection avoids SQLITE_BUSY under
		// concurrent handlers
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate record store: %w", err)
	}

	return &Store{db: db, bus: NewBus(), logger: logger}, nil
}

// OpenSQLite opens a sqlite-backed store at path. Used by tests and tooling.
func OpenSQLite(path string, logger *zap.Logger) (*Store, error) {
	return Open(&config.StoreConfig{Driver: "sqlite", Path: path}, logger)
}

// Bus exposes the store's change bus for subscribers.
func (s *Store) Bus() *Bus {
	return s.bus
}

// Get loads the record under key and unmarshals it into out. Returns
// ErrKeyNotFound when absent and ErrMalformedRecord when the stored value is
// not valid JSON for out.
func (s *Store) Get(ctx context.Context, key string, out interface{}) error {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read record %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(rec.Value), out); err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrMalformedRecord, key, err)
	}
	return nil
}

// Set marshals v and stores it under key, replacing any previous value and
// incrementing the revision. In-process subscribers of the key are notified
// after the write commits.
func (s *Store) Set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record %q: %w", key, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec Record
		err := tx.First(&rec, "key = ?", key).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&Record{Key: key, Value: string(data), Revision: 1}).Error
		case err != nil:
			return err
		default:
			return tx.Model(&Record{}).Where("key = ?", key).Updates(map[string]interface{}{
				"value":    string(data),
				"revision": rec.Revision + 1,
			}).Error
		}
	})
	if err != nil {
		return fmt.Errorf("failed to write record %q: %w", key, err)
	}

	s.bus.Publish(key)
	return nil
}

// Delete removes the record under key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&Record{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete record %q: %w", key, err)
	}
	s.bus.Publish(key)
	return nil
}

// Revision returns the current revision of key, or 0 when absent.
func (s *Store) Revision(ctx context.Context, key string) (int64, error) {
	var rec Record
	err := s.db.WithContext(ctx).Select("revision").First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read revision of %q: %w", key, err)
	}
	return rec.Revision, nil
}

// Dump returns all records as raw JSON keyed by record key. Used by the
// backup job.
func (s *Store) Dump(ctx context.Context) (map[string]json.RawMessage, error) {
	var recs []Record
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to dump records: %w", err)
	}
	out := make(map[string]json.RawMessage, len(recs))
	for _, rec := range recs {
		out[rec.Key] = json.RawMessage(rec.Value)
	}
	return out, nil
}

// Ping verifies the underlying database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
