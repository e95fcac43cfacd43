package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, если конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Booking       BookingConfig       `toml:"booking"`
	Scheduler     SchedulerConfig     `toml:"scheduler"`
	NotifyService NotifyServiceConfig `toml:"notify_service"`
}

// ServerConfig параметры HTTP-сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-параметры бронирования
type BookingConfig struct {
	// Timezone часовой пояс студий, в котором заданы часы работы
	Timezone string `toml:"timezone"`
	// AutoConfirmAfterMinutes через сколько минут PENDING подтверждается автоматически
	AutoConfirmAfterMinutes int `toml:"auto_confirm_after_minutes"`
}

// Location загружает часовой пояс из конфигурации
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// AutoConfirmAfter порог автоподтверждения
func (c BookingConfig) AutoConfirmAfter() time.Duration {
	return time.Duration(c.AutoConfirmAfterMinutes) * time.Minute
}

// SchedulerConfig параметры фоновой задачи автоподтверждения
type SchedulerConfig struct {
	Enabled                    bool `toml:"enabled"`
	AutoConfirmIntervalSeconds int  `toml:"auto_confirm_interval_seconds"`
	Workers                    int  `toml:"workers"`
}

func (c SchedulerConfig) Interval() time.Duration {
	return time.Duration(c.AutoConfirmIntervalSeconds) * time.Second
}

// NotifyServiceConfig адрес внешнего сервиса уведомлений
type NotifyServiceConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Default конфигурация по умолчанию, поверх неё накладывается файл
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "reservations",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "studio_reservations",
		},
		Booking: BookingConfig{
			Timezone:                "UTC",
			AutoConfirmAfterMinutes: 30,
		},
		Scheduler: SchedulerConfig{
			Enabled:                    true,
			AutoConfirmIntervalSeconds: 300,
			Workers:                    4,
		},
		NotifyService: NotifyServiceConfig{Timeout: 5},
	}
}

// Load читает TOML-файл, затем .env (если есть) и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err)
		}
		*dst = n
		return nil
	}

	setString("DB_HOST", &c.Database.Host)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("LOG_LEVEL", &c.Logs.Level)
	setString("APP_TIMEZONE", &c.Booking.Timezone)
	setString("NOTIFY_SERVICE_URL", &c.NotifyService.URL)

	if err := setInt("DB_PORT", &c.Database.Port); err != nil {
		return err
	}
	return setInt("HTTP_PORT", &c.Server.HTTPPort)
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Booking.AutoConfirmAfterMinutes <= 0 {
		return fmt.Errorf("%w: booking.auto_confirm_after_minutes must be positive", ErrInvalidConfig)
	}
	if c.Scheduler.Enabled {
		if c.Scheduler.AutoConfirmIntervalSeconds <= 0 {
			return fmt.Errorf("%w: scheduler.auto_confirm_interval_seconds must be positive", ErrInvalidConfig)
		}
		if c.Scheduler.Workers <= 0 {
			return fmt.Errorf("%w: scheduler.workers must be positive", ErrInvalidConfig)
		}
	}
	if c.NotifyService.Enabled && c.NotifyService.URL == "" {
		return fmt.Errorf("%w: notify_service.url is required when enabled", ErrInvalidConfig)
	}
	return nil
}
