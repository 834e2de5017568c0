package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/config"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/api/handler"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/api/router"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/records"
	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/service"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/database"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/jwt"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/kvstore"
	applogger "github.com/MuhammadAwais989/school-managment-system-sub000/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("records_base_url", cfg.Records.BaseURL),
	)

	// 3. 初始化跨会话缓存后端
	store, rdb, cleanup := newCacheStore(cfg, logger)
	defer cleanup()

	// 4. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 5. 依赖注入: Records → Service → Handler
	rc := records.NewClient(&cfg.Records, logger)
	svc := service.NewService(cfg, rc, store, logger)
	h := handler.NewHandler(svc)

	// 6. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 7. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 8. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务器已关闭")
}

// newCacheStore 按配置选择缓存后端
//
//	redis    首选；连接失败时降级到内存后端，服务照常启动
//	postgres 自动执行迁移建表
//	memory   进程内，仅适合开发与测试
//
// 返回的 *kvstore.Redis 仅在 Redis 后端生效时非 nil（限流中间件用）
func newCacheStore(cfg *config.Config, logger *zap.Logger) (kvstore.Store, *kvstore.Redis, func()) {
	switch cfg.Cache.Backend {
	case "redis":
		rdb, err := kvstore.NewRedis(&cfg.Cache.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，降级为内存缓存（重启后缓存值丢失）", zap.Error(err))
			return kvstore.NewMemory(), nil, func() {}
		}
		return rdb, rdb, func() { rdb.Close() }

	case "postgres":
		db, err := database.NewDB(&cfg.Cache.Postgres, logger)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
		return kvstore.NewPostgres(db, logger), nil, func() { sqlDB.Close() }

	default:
		logger.Info("使用内存缓存后端（重启后缓存值丢失）")
		return kvstore.NewMemory(), nil, func() {}
	}
}
