package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Records RecordsConfig `mapstructure:"records"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Billing BillingConfig `mapstructure:"billing"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RecordsConfig 外部学籍记录 API 配置
// 学生/教职工/考勤/收支等原始数据均来自该外部 REST 服务
type RecordsConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig 跨会话缓存配置
// backend: redis | postgres | memory
type CacheConfig struct {
	Backend  string         `mapstructure:"backend"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// RedisConfig Redis 缓存后端配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PostgresConfig PostgreSQL 缓存后端配置
type PostgresConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// AuthConfig JWT 认证配置
// Token 由外部认证服务签发，本服务仅以共享密钥校验
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// BillingConfig 学费核算配置
type BillingConfig struct {
	// BillableMonths 一个学年内计费月数，其余为假期月
	BillableMonths int `mapstructure:"billable_months"`
	// DefaultMonthlyFee 班级费率表未命中时的默认月费
	DefaultMonthlyFee int64 `mapstructure:"default_monthly_fee"`
	// ClassRates 班级全名（含班别，如 "Nine B"）→ 月费，精确匹配
	ClassRates map[string]int64 `mapstructure:"class_rates"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("records.base_url", "http://localhost:5000")
	v.SetDefault("records.timeout", "10s")

	v.SetDefault("cache.backend", "redis")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.postgres.host", "localhost")
	v.SetDefault("cache.postgres.port", 5432)
	v.SetDefault("cache.postgres.name", "school_console")
	v.SetDefault("cache.postgres.user", "postgres")
	v.SetDefault("cache.postgres.password", "")
	v.SetDefault("cache.postgres.sslmode", "disable")
	v.SetDefault("cache.postgres.timezone", "Asia/Karachi")
	v.SetDefault("cache.postgres.max_open_conns", 10)
	v.SetDefault("cache.postgres.max_idle_conns", 5)

	v.SetDefault("billing.billable_months", 10)
	v.SetDefault("billing.default_monthly_fee", 1000)
	v.SetDefault("billing.class_rates", defaultClassRates())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("SCHOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Records.BaseURL == "" {
		return fmt.Errorf("配置校验失败: records.base_url 不能为空")
	}
	if c.Billing.BillableMonths <= 0 || c.Billing.BillableMonths > 12 {
		return fmt.Errorf("配置校验失败: billing.billable_months 必须在 1-12 之间")
	}
	switch c.Cache.Backend {
	case "redis", "postgres", "memory":
	default:
		return fmt.Errorf("配置校验失败: cache.backend 必须为 redis/postgres/memory 之一")
	}
	return nil
}

// defaultClassRates 默认班级费率表（与学校现行收费标准一致）
func defaultClassRates() map[string]int64 {
	return map[string]int64{
		"Nursery A": 800,
		"Nursery B": 800,
		"Prep A":    900,
		"Prep B":    900,
		"One A":     1000,
		"One B":     1000,
		"Two A":     1100,
		"Two B":     1100,
		"Three A":   1150,
		"Three B":   1150,
		"Four A":    1200,
		"Four B":    1200,
		"Five A":    1250,
		"Five B":    1250,
		"Six A":     1300,
		"Six B":     1300,
		"Seven A":   1400,
		"Seven B":   1400,
		"Eight A":   1500,
		"Eight B":   1500,
		"Nine A":    1600,
		"Nine B":    1600,
		"Ten A":     1800,
		"Ten B":     1800,
	}
}
