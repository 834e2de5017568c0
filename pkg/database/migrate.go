package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// migrations 目前只维护 kv_entries 一张表：
// Postgres 模式的跨会话缓存后端，key 为主键，value 存字符串或 JSON
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 把 kv_entries 缓存表结构追到最新版本，已是最新则无操作
// Redis 模式不依赖该表，但迁移保持幂等，启动时统一调用即可
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("读取内嵌迁移脚本失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("构造 postgres 迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("升级缓存表结构失败: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		// 上次迁移中途失败，需人工处理后再启动
		logger.Warn("缓存表迁移处于 dirty 状态", zap.Uint("version", version))
	} else {
		logger.Info("缓存表迁移完成", zap.Uint("version", version))
	}

	return nil
}
