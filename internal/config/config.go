package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig      `toml:"server"`
	Database       DatabaseConfig    `toml:"database"`
	Logs           LogsConfig        `toml:"logs"`
	Metrics        MetricsConfig     `toml:"metrics"`
	Cache          CacheConfig       `toml:"cache"`
	PricingService IntegrationConfig `toml:"pricing_service"`
	AgentService   IntegrationConfig `toml:"agent_service"`
	Search         SearchConfig      `toml:"search"`
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

// DSN собирает строку подключения к PostgreSQL
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
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// CacheConfig настройки двухуровневого кеша результатов поиска
type CacheConfig struct {
	Enabled       bool   `toml:"enabled"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	LocalMaxSize  int64  `toml:"local_max_size"`
	LocalTTL      int    `toml:"local_ttl"`  // секунды
	RedisTTL      int    `toml:"redis_ttl"`  // секунды
}

// IntegrationConfig настройки внешнего HTTP сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// SearchConfig настройки поискового движка
type SearchConfig struct {
	MaxStayNights       int    `toml:"max_stay_nights"`
	LegacyBookingPolicy string `toml:"legacy_booking_policy"`
}

// Policy возвращает типизированную политику обработки legacy-бронирований
func (c SearchConfig) Policy() domain.LegacyBookingPolicy {
	return domain.LegacyBookingPolicy(c.LegacyBookingPolicy)
}

// Load читает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "zs-search-service"
	}

	if cfg.Cache.LocalMaxSize == 0 {
		cfg.Cache.LocalMaxSize = 1000
	}
	if cfg.Cache.LocalTTL == 0 {
		cfg.Cache.LocalTTL = 300
	}
	if cfg.Cache.RedisTTL == 0 {
		cfg.Cache.RedisTTL = 900
	}

	if cfg.PricingService.Timeout == 0 {
		cfg.PricingService.Timeout = 5
	}
	if cfg.AgentService.Timeout == 0 {
		cfg.AgentService.Timeout = 5
	}

	if cfg.Search.MaxStayNights == 0 {
		cfg.Search.MaxStayNights = domain.DefaultMaxStayNights
	}
	if cfg.Search.LegacyBookingPolicy == "" {
		cfg.Search.LegacyBookingPolicy = string(domain.LegacyPolicyIgnore)
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if !cfg.Search.Policy().Valid() {
		return fmt.Errorf("config: unknown search.legacy_booking_policy %q", cfg.Search.LegacyBookingPolicy)
	}
	return nil
}
