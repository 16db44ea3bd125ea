package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin HTTP
}

type Rotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	Rotate Rotate
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr        string `mapstructure:"addr"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db"`
	CacheTTLSec int    `mapstructure:"cache_ttl_sec"`
}

// CacheTTL 为 0 表示关闭缓存
func (r Redis) CacheTTL() time.Duration {
	if r.Addr == "" {
		return 0
	}
	return time.Duration(r.CacheTTLSec) * time.Second
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AcquireTimeoutMs   int
	AutoMigrate        bool
	LogLevel           string
}

func (d DB) AcquireTimeout() time.Duration {
	return time.Duration(d.AcquireTimeoutMs) * time.Millisecond
}

type Pagination struct {
	DefaultSize int
	MaxSize     int
}

type Password struct {
	Cost int
}

type Config struct {
	App        App
	Log        Log
	JWT        JWT
	DB         DB
	Redis      Redis `mapstructure:"redis"`
	Pagination Pagination
	Password   Password
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "storefront-api")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("app.admin.readtimeoutsec", 5)
	v.SetDefault("app.admin.writetimeoutsec", 10)
	v.SetDefault("app.admin.idletimeoutsec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "storefront-api")
	v.SetDefault("jwt.accesstokenttlmin", 60)

	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.automigrate", false)
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.acquiretimeoutms", 3000)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl_sec", 60)

	v.SetDefault("pagination.defaultsize", 50)
	v.SetDefault("pagination.maxsize", 200)

	v.SetDefault("password.cost", 10)
}

// Load 读取 YAML 配置，APP_* 环境变量覆盖同名键（app.http.port -> APP_APP_HTTP_PORT）
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.DB.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("db.maxopenconns must be positive, got %d", c.DB.MaxOpenConns)
	}
	if c.Pagination.DefaultSize <= 0 || c.Pagination.MaxSize < c.Pagination.DefaultSize {
		return nil, fmt.Errorf("invalid pagination sizes: default=%d max=%d",
			c.Pagination.DefaultSize, c.Pagination.MaxSize)
	}
	return &c, nil
}
