package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MuhammadAwais989/school-managment-system-sub000/config"
)

// 缓存键统一加前缀，避免与同实例上其他系统冲突
const redisKeyPrefix = "school:cache:"

// Redis 跨会话缓存的 Redis 后端
type Redis struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewRedis 创建 Redis 后端并执行 Ping 健康检查
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 缓存后端连接成功", zap.String("addr", cfg.Addr))

	return &Redis{rdb: rdb, logger: logger}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	v, err := r.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			// 读取失败按键缺失处理，由调用方回退默认值
			r.logger.Warn("缓存读取失败", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return v, true
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	// 无 TTL：缓存值跨会话长期有效，直到下次整值覆盖
	return r.rdb.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, redisKeyPrefix+key).Err()
}

// CheckRateLimit 滑动窗口限流：窗口内请求数不超过 limit 时放行
func (r *Redis) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now().UnixNano()
	windowStart := now - window.Nanoseconds()
	rkey := redisKeyPrefix + key

	pipe := r.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, rkey, "0", fmt.Sprintf("%d", windowStart))
	count := pipe.ZCard(ctx, rkey)
	pipe.ZAdd(ctx, rkey, goredis.Z{Score: float64(now), Member: now})
	pipe.Expire(ctx, rkey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() < int64(limit), nil
}

// Close 关闭 Redis 连接
func (r *Redis) Close() error {
	return r.rdb.Close()
}
