package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	LogMode  string
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Gateway  GatewayConfig
	Bank     BankConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type JWTConfig struct {
	SecretKey string
}

// GatewayConfig configures the Instamoney client
type GatewayConfig struct {
	BaseURL       string
	SecretKey     string
	CallbackToken string
	Timeout       time.Duration
	Sandbox       bool
	// circuit breaker
	MaxFailures  uint32
	OpenTimeout  time.Duration
	HalfOpenReqs uint32
}

type BankConfig struct {
	CacheTTL time.Duration
}

var envBindings = map[string]string{
	"port":     "PORT",
	"log.mode": "LOG_MODE",

	"database.host":              "DATABASE_HOST",
	"database.port":              "DATABASE_PORT",
	"database.user":              "DATABASE_USER",
	"database.password":          "DATABASE_PASSWORD",
	"database.name":              "DATABASE_NAME",
	"database.ssl_mode":          "DATABASE_SSL_MODE",
	"database.max_open_conns":    "DATABASE_MAX_OPEN_CONNS",
	"database.max_idle_conns":    "DATABASE_MAX_IDLE_CONNS",
	"database.conn_max_lifetime": "DATABASE_CONN_MAX_LIFETIME",
	"database.auto_migrate":      "DATABASE_AUTO_MIGRATE",

	"redis.host":     "REDIS_HOST",
	"redis.port":     "REDIS_PORT",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",

	"jwt.secret_key": "JWT_SECRET_KEY",

	"instamoney.base_url":          "INSTAMONEY_BASE_URL",
	"instamoney.secret_key":        "INSTAMONEY_SECRET_KEY",
	"instamoney.callback_token":    "INSTAMONEY_CALLBACK_TOKEN",
	"instamoney.timeout":           "INSTAMONEY_TIMEOUT",
	"instamoney.sandbox":           "INSTAMONEY_SANDBOX",
	"instamoney.max_failures":      "INSTAMONEY_MAX_FAILURES",
	"instamoney.open_timeout":      "INSTAMONEY_OPEN_TIMEOUT",
	"instamoney.half_open_request": "INSTAMONEY_HALF_OPEN_REQUESTS",

	"bank.cache_ttl": "BANK_CACHE_TTL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.mode", "release")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.name", "ledgers")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("instamoney.base_url", "https://api.instamoney.co")
	v.SetDefault("instamoney.timeout", 10*time.Second)
	v.SetDefault("instamoney.sandbox", false)
	v.SetDefault("instamoney.max_failures", 5)
	v.SetDefault("instamoney.open_timeout", 30*time.Second)
	v.SetDefault("instamoney.half_open_request", 1)

	v.SetDefault("bank.cache_ttl", time.Hour)
}

// Load reads configuration from an optional .env file and the environment.
func Load(path string) *Config {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		v.BindEnv(key, env)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			log.Printf("Config file not found, using defaults: %v", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:    v.GetString("port"),
		LogMode: v.GetString("log.mode"),
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetString("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			Name:            v.GetString("database.name"),
			SSLMode:         v.GetString("database.ssl_mode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			AutoMigrate:     v.GetBool("database.auto_migrate"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey: v.GetString("jwt.secret_key"),
		},
		Gateway: GatewayConfig{
			BaseURL:       v.GetString("instamoney.base_url"),
			SecretKey:     v.GetString("instamoney.secret_key"),
			CallbackToken: v.GetString("instamoney.callback_token"),
			Timeout:       v.GetDuration("instamoney.timeout"),
			Sandbox:       v.GetBool("instamoney.sandbox"),
			MaxFailures:   v.GetUint32("instamoney.max_failures"),
			OpenTimeout:   v.GetDuration("instamoney.open_timeout"),
			HalfOpenReqs:  v.GetUint32("instamoney.half_open_request"),
		},
		Bank: BankConfig{
			CacheTTL: v.GetDuration("bank.cache_ttl"),
		},
	}
}
