package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// 环境变量
const (
	envPrefix    = "CATALOGUE"
	envName      = "CATALOGUE_ENV"    // 选择config.<env>.yaml
	envConfigKey = "CATALOGUE_CONFIG" // 显式指定配置文件路径

	defaultJWTSecret = "change-me-in-production"
)

// 封面校验策略
const (
	CoverPolicyDimensions = "dimensions" // 解码图片头，宽高都大于1才认为存在
	CoverPolicyStatus     = "status"     // 只看HTTP 200
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件与环境变量覆盖
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Cover    CoverConfig    `mapstructure:"cover"`
	Log      LogConfig      `mapstructure:"log"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// DSN 非空时直接使用，忽略下面的分项配置
	DSN             string        `mapstructure:"dsn"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// ConnString 生成MySQL连接字符串
// 格式：user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true
// clientFoundRows让UPDATE返回匹配行数而非实际修改行数，计数写回相同值时不会被误判为不存在
// 显式DSN同样强制打开clientFoundRows
func (d DatabaseConfig) ConnString() (string, error) {
	if d.DSN != "" {
		dsn, err := mysqldriver.ParseDSN(d.DSN)
		if err != nil {
			return "", fmt.Errorf("无效的数据库DSN: %w", err)
		}
		dsn.ClientFoundRows = true
		return dsn.FormatDSN(), nil
	}
	loc := url.QueryEscape(d.Loc)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s&clientFoundRows=true",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc), nil
}

type RedisConfig struct {
	// Enabled 为false时不校验Token吊销列表
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	// TokenExpire 只用于本地签发调试Token
	TokenExpire time.Duration `mapstructure:"token_expire"`
}

type CoverConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Policy  string        `mapstructure:"policy"` // dimensions | status
	Timeout time.Duration `mapstructure:"timeout"`
	// 熔断：连续失败BreakerFailures次后打开，BreakerTimeout后进入半开
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"` // OTLP gRPC host:port
	ServiceName string `mapstructure:"service_name"`
}

// Load 加载配置文件
// 支持：
// 1. 默认加载config/config.yaml
// 2. 通过环境变量CATALOGUE_ENV指定环境（如config.prod.yaml）
// 3. 通过环境变量CATALOGUE_CONFIG指定配置文件路径
// 4. 环境变量覆盖（如CATALOGUE_DATABASE_PASSWORD → database.password）
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(envConfigKey); path != "" {
		v.SetConfigFile(path)
	} else {
		name := "config"
		if env := os.Getenv(envName); env != "" {
			name = "config." + env
		}
		v.SetConfigName(name)
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 环境变量绑定：键中的"."替换为"_"
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults 默认值
// 每个键都注册默认值，保证仅通过环境变量提供的键也能被Unmarshal识别
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "catalogue")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "Local")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("jwt.secret", defaultJWTSecret)
	v.SetDefault("jwt.token_expire", 2*time.Hour)

	v.SetDefault("cover.base_url", "https://covers.openlibrary.org")
	v.SetDefault("cover.policy", CoverPolicyDimensions)
	v.SetDefault("cover.timeout", 10*time.Second)
	v.SetDefault("cover.breaker_failures", 5)
	v.SetDefault("cover.breaker_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.enable_caller", false)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.service_name", "catalogue")
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}
	switch cfg.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("无效的运行模式: %q", cfg.Server.Mode)
	}

	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT密钥不能为空")
	}
	if cfg.JWT.Secret == defaultJWTSecret && cfg.Server.Mode == "release" {
		return fmt.Errorf("生产环境必须修改JWT密钥")
	}

	if _, err := cfg.Database.ConnString(); err != nil {
		return err
	}

	switch cfg.Cover.Policy {
	case CoverPolicyDimensions, CoverPolicyStatus:
	default:
		return fmt.Errorf("无效的封面校验策略: %q", cfg.Cover.Policy)
	}
	if _, err := url.ParseRequestURI(cfg.Cover.BaseURL); err != nil {
		return fmt.Errorf("无效的封面服务地址: %w", err)
	}
	if cfg.Cover.Timeout <= 0 {
		return fmt.Errorf("封面查询超时必须大于0")
	}

	return nil
}
