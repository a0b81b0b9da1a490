package dal

import (
	"context"
	"fmt"
	"time"

	tables "github.com/bezalel-media-core/crosspost/dal/tables/v1"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type SqliteMetaDao struct {
	db *gorm.DB
}

// OpenSqlite opens (or creates) the metadata database at path.
func OpenSqlite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

func NewSqliteMetaDao(db *gorm.DB) (*SqliteMetaDao, error) {
	if err := db.AutoMigrate(&tables.MetaEntry{}); err != nil {
		return nil, fmt.Errorf("migrate meta table: %w", err)
	}
	return &SqliteMetaDao{db: db}, nil
}

func (d *SqliteMetaDao) GetAllMeta(ctx context.Context, kind tables.MetaKind, entityID string) (map[string]string, error) {
	var entries []tables.MetaEntry
	err := d.db.WithContext(ctx).
		Where("entity_key = ?", tables.EntityKey(kind, entityID)).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("query meta items: %w", err)
	}
	result := make(map[string]string, len(entries))
	for _, e := range entries {
		result[e.MetaKey] = e.MetaValue
	}
	return result, nil
}

func (d *SqliteMetaDao) UpdateMeta(ctx context.Context, kind tables.MetaKind, entityID string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	now := time.Now().UnixMilli()
	entries := make([]tables.MetaEntry, 0, len(values))
	for _, key := range sortedKeys(values) {
		entries = append(entries, tables.MetaEntry{
			EntityKey:           tables.EntityKey(kind, entityID),
			MetaKey:             key,
			MetaValue:           values[key],
			UpdatedAtEpochMilli: now,
		})
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entity_key"}, {Name: "meta_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"meta_value", "updated_at_epoch_milli"}),
		}).Create(&entries).Error
	})
	if err != nil {
		return fmt.Errorf("write meta items: %w", err)
	}
	return nil
}
