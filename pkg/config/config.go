package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	MySQL     MySQLConfig     `mapstructure:"mysql"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Lmstfy    LmstfyConfig    `mapstructure:"lmstfy"`
	Alert     AlertConfig     `mapstructure:"alert"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Workers   []WorkerConfig  `mapstructure:"workers"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	Timezone string `mapstructure:"timezone"` // 计算"今天"和每日触发时间使用的时区
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// InventoryConfig 库存存储配置
type InventoryConfig struct {
	Driver       string `mapstructure:"driver"`         // mysql / memory
	SeedDemoData bool   `mapstructure:"seed_demo_data"` // 空库时写入演示数据
}

// MySQLConfig MySQL 配置
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"` // 告警发布频道
}

// LmstfyConfig Lmstfy 配置
type LmstfyConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Namespace   string `mapstructure:"namespace"`
	Token       string `mapstructure:"token"`
	NotifyQueue string `mapstructure:"notify_queue"` // 告警投递队列（下游邮件/短信 worker 消费）
	NotifyTTL   uint32 `mapstructure:"notify_ttl"`   // 告警消息存活秒数
}

// AlertConfig 告警配置
type AlertConfig struct {
	HistoryCap int `mapstructure:"history_cap"`
	MaxRecipes int `mapstructure:"max_recipes"`
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	PoolSize          int           `mapstructure:"pool_size"`
	MorningReportHour int           `mapstructure:"morning_report_hour"`
	SevenDayHour      int           `mapstructure:"seven_day_hour"`
	TomorrowHour      int           `mapstructure:"tomorrow_hour"`
	MealPlanningHour  int           `mapstructure:"meal_planning_hour"`
	FastInterval      time.Duration `mapstructure:"fast_interval"`
	FastCheckEnabled  bool          `mapstructure:"fast_check_enabled"`
}

// WorkerConfig Worker 配置（队列触发的检查任务）
type WorkerConfig struct {
	Name       string           `mapstructure:"name"`
	QueueName  string           `mapstructure:"queue_name"`
	Subscriber SubscriberConfig `mapstructure:"subscriber"`
	Processor  ProcessorConfig  `mapstructure:"processor"`
}

// SubscriberConfig Subscriber 配置
type SubscriberConfig struct {
	Threads      int           `mapstructure:"threads"`       // 并发拉取数
	Rate         time.Duration `mapstructure:"rate"`          // 拉取速率
	Timeout      time.Duration `mapstructure:"timeout"`       // 拉取超时
	TTR          time.Duration `mapstructure:"ttr"`           // Time-To-Run
	ErrorBackoff time.Duration `mapstructure:"error_backoff"` // 错误退避时间
}

// ProcessorConfig Processor 配置
type ProcessorConfig struct {
	Threads    int           `mapstructure:"threads"`     // 并发处理数
	BufferSize int           `mapstructure:"buffer_size"` // Channel 缓冲大小
	Timeout    time.Duration `mapstructure:"timeout"`     // 单个任务超时
}

// 默认值
const (
	DefaultPort              = "8080"
	DefaultHistoryCap        = 100
	DefaultMaxRecipes        = 5
	DefaultPoolSize          = 4
	DefaultMorningReportHour = 8
	DefaultSevenDayHour      = 9
	DefaultTomorrowHour      = 18
	DefaultMealPlanningHour  = 19
	DefaultFastInterval      = 2 * time.Minute
)

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults 未配置的字段使用默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "expmon")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.timezone", "Local")
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("inventory.driver", "memory")
	v.SetDefault("redis.channel", "expiration:alerts")
	v.SetDefault("lmstfy.notify_queue", "expiration_alert_notify")
	v.SetDefault("lmstfy.notify_ttl", 86400)
	v.SetDefault("lmstfy.port", 7777)
	v.SetDefault("alert.history_cap", DefaultHistoryCap)
	v.SetDefault("alert.max_recipes", DefaultMaxRecipes)
	v.SetDefault("scheduler.pool_size", DefaultPoolSize)
	v.SetDefault("scheduler.morning_report_hour", DefaultMorningReportHour)
	v.SetDefault("scheduler.seven_day_hour", DefaultSevenDayHour)
	v.SetDefault("scheduler.tomorrow_hour", DefaultTomorrowHour)
	v.SetDefault("scheduler.meal_planning_hour", DefaultMealPlanningHour)
	v.SetDefault("scheduler.fast_interval", DefaultFastInterval)
	v.SetDefault("scheduler.fast_check_enabled", true)
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("app.timezone is invalid: %w", err)
	}

	switch c.Inventory.Driver {
	case "mysql":
		if c.MySQL.DSN == "" {
			return fmt.Errorf("mysql.dsn is required when inventory.driver is mysql")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown inventory.driver: %s", c.Inventory.Driver)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}
	if (c.Lmstfy.Enabled || len(c.Workers) > 0) && c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy.host is required")
	}

	if c.Alert.HistoryCap <= 0 {
		return fmt.Errorf("alert.history_cap must be positive")
	}
	if c.Alert.MaxRecipes <= 0 {
		return fmt.Errorf("alert.max_recipes must be positive")
	}

	s := c.Scheduler
	if s.PoolSize <= 0 {
		return fmt.Errorf("scheduler.pool_size must be positive")
	}
	for name, hour := range map[string]int{
		"morning_report_hour": s.MorningReportHour,
		"seven_day_hour":      s.SevenDayHour,
		"tomorrow_hour":       s.TomorrowHour,
		"meal_planning_hour":  s.MealPlanningHour,
	} {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("scheduler.%s must be within 0-23, got %d", name, hour)
		}
	}
	if s.FastCheckEnabled && s.FastInterval <= 0 {
		return fmt.Errorf("scheduler.fast_interval must be positive")
	}

	for _, w := range c.Workers {
		if w.Name == "" || w.QueueName == "" {
			return fmt.Errorf("worker name and queue_name are required")
		}
	}
	return nil
}

// Location 解析时区
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" || c.App.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.App.Timezone)
}
