// Package localstore is the client-side persistent fallback: one JSON
// collection per entity key, always read and rewritten whole.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"
)

// Storage keys, one per entity type.
const (
	KeyMissions = "missions"
	KeyNews     = "vmp_news"
	KeyGallery  = "vmp_gallery"
	KeySettings = "vmp_settings"
)

type CollectionRecord struct {
	Key       string         `gorm:"column:key;primaryKey"`
	Value     datatypes.JSON `gorm:"column:value;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (CollectionRecord) TableName() string {
	return "local_collections"
}

type DB struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite file at path.
func Open(path string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	return New(db)
}

// New wraps an existing connection and ensures the table exists.
func New(db *gorm.DB) (*DB, error) {
	if err := db.AutoMigrate(&CollectionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return &DB{db: db}, nil
}

// Load decodes the collection stored under key into out. It reports false
// when nothing is stored yet.
func (d *DB) Load(ctx context.Context, key string, out any) (bool, error) {
	var rec CollectionRecord
	err := d.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(rec.Value, out); err != nil {
		// a corrupt snapshot is treated as empty
		log.Warn().Err(err).Str("key", key).Msg("local collection unreadable")
		return false, nil
	}
	return true, nil
}

// Save replaces the whole collection stored under key.
func (d *DB) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	rec := CollectionRecord{Key: key, Value: datatypes.JSON(raw), UpdatedAt: time.Now()}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

func (d *DB) Close() {
	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
