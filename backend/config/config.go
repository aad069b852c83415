package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string
	DSN    string
}

type JWT struct {
	Secret string
	Issuer string
	ExpMin int
}

type RateLimit struct {
	RPS   float64
	Burst int
}

type Config struct {
	HTTP      HTTP
	DB        DB
	JWT       JWT
	RateLimit RateLimit
	WebDir    string
	LogLevel  string
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.web_dir", "")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "data/attendance.db")
	v.SetDefault("jwt.issuer", "team-attendance")
	v.SetDefault("jwt.exp_min", 480) // 8 hours
	v.SetDefault("ratelimit.rps", 5)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		HTTP:      HTTP{Host: v.GetString("server.host"), Port: v.GetInt("server.port")},
		DB:        DB{Driver: v.GetString("db.driver"), DSN: v.GetString("db.dsn")},
		RateLimit: RateLimit{RPS: v.GetFloat64("ratelimit.rps"), Burst: v.GetInt("ratelimit.burst")},
		WebDir:    v.GetString("server.web_dir"),
		LogLevel:  v.GetString("log.level"),
	}
	cfg.JWT.Secret = v.GetString("jwt.secret")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	cfg.JWT.Issuer = v.GetString("jwt.issuer")
	cfg.JWT.ExpMin = v.GetInt("jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 480
	}
	return cfg, nil
}
