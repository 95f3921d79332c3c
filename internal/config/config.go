// Package config builds the single process-wide configuration object.
// Sources, lowest to highest priority: defaults, YAML file, .env, environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config — вся конфигурация сервиса. Создаётся один раз в main и передаётся явно.
type Config struct {
	DB     DBConfig     `yaml:"db"`
	HTTP   HTTPConfig   `yaml:"http"`
	GRPC   GRPCConfig   `yaml:"grpc"`
	Auth   AuthConfig   `yaml:"auth"`
	Clinic ClinicConfig `yaml:"clinic"`
}

type DBConfig struct {
	// Driver: postgres | mysql | sqlite
	Driver          string `yaml:"driver"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name"`
	SSLMode         string `yaml:"sslmode"`
	TimeZone        string `yaml:"timezone"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifeTime int    `yaml:"conn_max_lifetime_min"` // минут
	// Path используется только драйвером sqlite.
	Path string `yaml:"path"`
}

type HTTPConfig struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type GRPCConfig struct {
	// Пустой адрес отключает gRPC health-сервер.
	Addr string `yaml:"addr"`
}

type AuthConfig struct {
	// Пустой секрет отключает проверку токенов (режим одного оператора).
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	Issuer    string        `yaml:"issuer"`
}

type ClinicConfig struct {
	// Часовой пояс, в котором считается "сегодня" для заявок и смен.
	TimeZone string `yaml:"timezone"`
	// Максимальная длина периода отчёта в днях (0 — без ограничения).
	MaxReportDays int `yaml:"max_report_days"`
}

// Default returns a Config with the same defaults the env loader falls back to.
func Default() *Config {
	return &Config{
		DB: DBConfig{
			Driver:          "postgres",
			Host:            "postgres",
			Port:            5432,
			User:            "clinic",
			Password:        "clinic",
			Name:            "omch",
			SSLMode:         "disable",
			TimeZone:        "Asia/Shanghai",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifeTime: 30,
			Path:            "clinic.db",
		},
		HTTP: HTTPConfig{
			Addr:         ":8080",
			AllowOrigins: []string{"http://localhost:3000"},
		},
		GRPC: GRPCConfig{Addr: ":50051"},
		Auth: AuthConfig{
			TokenTTL: 12 * time.Hour,
			Issuer:   "clinic-desk",
		},
		Clinic: ClinicConfig{
			TimeZone:      "Asia/Shanghai",
			MaxReportDays: 366,
		},
	}
}

// Load собирает конфигурацию. path может быть пустым, тогда YAML не читается.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// .env необязателен; уже выставленные переменные не перетираются.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.DB.Driver = getEnv("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Host = getEnv("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = getEnvInt("DB_PORT", cfg.DB.Port)
	cfg.DB.User = getEnv("DB_USER", cfg.DB.User)
	cfg.DB.Password = getEnv("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = getEnv("DB_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", cfg.DB.SSLMode)
	cfg.DB.TimeZone = getEnv("DB_TIMEZONE", cfg.DB.TimeZone)
	cfg.DB.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns)
	cfg.DB.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.DB.MaxIdleConns)
	cfg.DB.ConnMaxLifeTime = getEnvInt("DB_CONN_MAX_LIFETIME_MIN", cfg.DB.ConnMaxLifeTime)
	cfg.DB.Path = getEnv("DB_PATH", cfg.DB.Path)

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", cfg.HTTP.Addr)
	if v := getEnv("HTTP_ALLOW_ORIGINS", ""); v != "" {
		cfg.HTTP.AllowOrigins = splitList(v)
	}
	cfg.GRPC.Addr = getEnv("GRPC_ADDR", cfg.GRPC.Addr)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTL = getEnvDuration("JWT_TTL", cfg.Auth.TokenTTL)
	cfg.Auth.Issuer = getEnv("JWT_ISSUER", cfg.Auth.Issuer)

	cfg.Clinic.TimeZone = getEnv("CLINIC_TIMEZONE", cfg.Clinic.TimeZone)
	cfg.Clinic.MaxReportDays = getEnvInt("CLINIC_MAX_REPORT_DAYS", cfg.Clinic.MaxReportDays)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "mysql":
		if c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "" {
			return fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	case "sqlite":
		if c.DB.Path == "" {
			return fmt.Errorf("invalid DB config: path must not be empty for sqlite")
		}
	default:
		return fmt.Errorf("invalid DB config: unsupported driver %q", c.DB.Driver)
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.Auth.JWTSecret != "" && c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	if c.Clinic.MaxReportDays < 0 {
		return fmt.Errorf("clinic.max_report_days must not be negative")
	}
	if _, err := c.Clinic.Location(); err != nil {
		return fmt.Errorf("clinic.timezone: %w", err)
	}
	return nil
}

// Location resolves the clinic timezone; empty means UTC.
func (c ClinicConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.TimeZone)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
