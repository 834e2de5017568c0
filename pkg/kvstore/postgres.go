package kvstore

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry 对应 kv_entries 表（见 pkg/database/migrations）
type KVEntry struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (KVEntry) TableName() string { return "kv_entries" }

// Postgres 跨会话缓存的 PostgreSQL 后端
// Redis 不可用的部署环境用它保证缓存值跨重启存活
type Postgres struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPostgres 创建 PostgreSQL 后端
func NewPostgres(db *gorm.DB, logger *zap.Logger) *Postgres {
	return &Postgres{db: db, logger: logger}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool) {
	var entry KVEntry
	err := p.db.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			p.logger.Warn("缓存读取失败", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return entry.Value, true
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	entry := KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	return p.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&KVEntry{}).Error
}
