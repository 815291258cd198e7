package config

import (
	"fmt"
	"strings"

	"github.com/pumpstore-next/internal/constants"
	"github.com/pumpstore-next/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	API      APIConfig      `mapstructure:"api"`
	Session  SessionConfig  `mapstructure:"session"`
	Cart     CartConfig     `mapstructure:"cart"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Checkout CheckoutConfig `mapstructure:"checkout"`
}

// AppConfig 运行模式配置
type AppConfig struct {
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// APIConfig 上游商城 API 配置
type APIConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// SessionPoolConfig 会话库连接池配置
type SessionPoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// SessionConfig 本地会话存储配置
type SessionConfig struct {
	Driver string            `mapstructure:"driver"` // 存储驱动（sqlite/postgres）
	DSN    string            `mapstructure:"dsn"`    // 连接串
	Pool   SessionPoolConfig `mapstructure:"pool"`
}

// CartConfig 购物车配置
type CartConfig struct {
	// MergeLines 为 true 时重复加购同一商品合并为一行并累加数量；
	// 为 false 时保留原始前端行为：每次加购生成独立行
	MergeLines bool `mapstructure:"merge_lines"`
}

// CatalogConfig 商品目录配置
type CatalogConfig struct {
	FetchLimit       int  `mapstructure:"fetch_limit"`
	FallbackToSample bool `mapstructure:"fallback_to_sample"` // 上游失败时降级为内置示例数据
}

// CheckoutConfig 结算流程配置
type CheckoutConfig struct {
	LoginRedirectDelayMS int `mapstructure:"login_redirect_delay_ms"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")   // 从 cmd/shopfront 运行时
	viper.AddConfigPath("./etc") // etc 文件夹

	viper.SetDefault("app.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "shopfront.log")
	viper.SetDefault("log.max_size_mb", 50)
	viper.SetDefault("log.max_backups", 5)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("api.base_url", "http://127.0.0.1:5000/api")
	viper.SetDefault("api.timeout_ms", 10000)
	viper.SetDefault("session.driver", "sqlite")
	viper.SetDefault("session.dsn", "./db/shopfront.db")
	viper.SetDefault("session.pool.max_open_conns", 1)
	viper.SetDefault("session.pool.max_idle_conns", 1)
	viper.SetDefault("session.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("session.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("cart.merge_lines", true)
	viper.SetDefault("catalog.fetch_limit", constants.DefaultProductFetchLimit)
	viper.SetDefault("catalog.fallback_to_sample", true)
	viper.SetDefault("checkout.login_redirect_delay_ms", 1500)

	// 环境变量支持（api.base_url -> API_BASE_URL）
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}

	return &cfg
}
