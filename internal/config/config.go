// Package config загрузка конфигурации сервиса из TOML файла
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Redis          RedisConfig          `toml:"redis"`
	ProductService ProductServiceConfig `toml:"product_service"`
	Ads            AdsConfig            `toml:"ads"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки redis для кеша выдачи
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ProductServiceConfig настройки интеграции с ProductService
type ProductServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// AdsConfig бизнес-настройки рекламного инвентаря
type AdsConfig struct {
	// Categories список известных категорий для CATEGORY_TOP слотов
	Categories []string `toml:"categories"`

	// BookingGraceDays на сколько дней в прошлое допускается дата старта (0 = только с сегодня)
	BookingGraceDays int `toml:"booking_grace_days"`

	// AllowAdminCancelActive разрешает администратору снимать уже идущую рекламу
	AllowAdminCancelActive bool `toml:"allow_admin_cancel_active"`

	// SweepIntervalMinutes период фонового прохода activate/complete (0 = выключен)
	SweepIntervalMinutes int `toml:"sweep_interval_minutes"`

	// ServeCacheTTLSeconds TTL кеша выдачи (0 = кеш выключен)
	ServeCacheTTLSeconds int `toml:"serve_cache_ttl_seconds"`

	// Хаус-баннеры на случай пустых слотов, по типам
	HouseRolling       []string `toml:"house_rolling"`
	HouseSide          []string `toml:"house_side"`
	HouseCategoryTop   []string `toml:"house_category_top"`
	HouseOrderComplete []string `toml:"house_order_complete"`
}

// Load читает и валидирует конфигурацию из файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "ad-booking-service"
	}
	if len(cfg.Ads.Categories) == 0 {
		cfg.Ads.Categories = []string{"beauty", "electronics", "meal-kit", "platform"}
	}

	return &cfg, nil
}
