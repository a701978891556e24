package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Port          string
	GinMode       string
	SessionSecret string

	DBDriver    string
	DatabaseURL string

	CacheDriver string
	RedisAddr   string
	CacheTTL    time.Duration

	// 登录接口限流：每个 IP 每秒 LoginRate 次，突发 LoginBurst
	LoginRate  float64
	LoginBurst int
}

// Load 读取 .env（可选）和环境变量
func Load() (*Config, error) {
	// .env 不存在时直接使用环境变量
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SESSION_SECRET", "secret")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=agora port=5432 sslmode=disable")
	v.SetDefault("CACHE_DRIVER", CacheMemory)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("LOGIN_RATE", 1.0)
	v.SetDefault("LOGIN_BURST", 5)

	cfg := &Config{
		Port:          v.GetString("PORT"),
		GinMode:       v.GetString("GIN_MODE"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		DBDriver:      v.GetString("DB_DRIVER"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		CacheDriver:   v.GetString("CACHE_DRIVER"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		CacheTTL:      v.GetDuration("CACHE_TTL"),
		LoginRate:     v.GetFloat64("LOGIN_RATE"),
		LoginBurst:    v.GetInt("LOGIN_BURST"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.CacheDriver {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("config: unsupported CACHE_DRIVER %q", c.CacheDriver)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("config: CACHE_TTL must be positive")
	}
	if c.LoginRate <= 0 || c.LoginBurst <= 0 {
		return fmt.Errorf("config: LOGIN_RATE and LOGIN_BURST must be positive")
	}
	return nil
}
