package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	// ErrConfigNotFound файл конфигурации не найден
	ErrConfigNotFound = errors.New("config: file not found")

	// ErrInvalidConfig конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig      `toml:"server"`
	Database     DatabaseConfig    `toml:"database"`
	Logs         LogsConfig        `toml:"logs"`
	Metrics      MetricsConfig     `toml:"metrics"`
	SpaceService IntegrationConfig `toml:"space_service"`
	UserService  IntegrationConfig `toml:"user_service"`
	Engine       EngineConfig      `toml:"engine"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig параметры HTTP клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// TimeoutDuration таймаут клиента
func (i IntegrationConfig) TimeoutDuration() time.Duration {
	return time.Duration(i.Timeout) * time.Second
}

// EngineConfig параметры движка бронирования
type EngineConfig struct {
	// Горизонт перечисления слотов для пространств без ограничения по сроку
	SlotHorizonDays int `toml:"slot_horizon_days"`
	// Период проверки просроченных заявок
	ExpirySweepIntervalSeconds int `toml:"expiry_sweep_interval_seconds"`
	// Максимум слотов в одном ответе
	MaxSlotsPerRequest int `toml:"max_slots_per_request"`
}

// ExpirySweepInterval период проверки просроченных заявок
func (e EngineConfig) ExpirySweepInterval() time.Duration {
	return time.Duration(e.ExpirySweepIntervalSeconds) * time.Second
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "space_booking_service"
	}

	setDefault(&c.SpaceService.Timeout, 5)
	setDefault(&c.UserService.Timeout, 5)

	setDefault(&c.Engine.SlotHorizonDays, 90)
	setDefault(&c.Engine.ExpirySweepIntervalSeconds, 60)
	setDefault(&c.Engine.MaxSlotsPerRequest, 100)
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, fmt.Errorf("database.max_idle_conns (%d) exceeds max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns))
	}
	for name, svc := range map[string]IntegrationConfig{
		"space_service": c.SpaceService,
		"user_service":  c.UserService,
	} {
		if _, err := url.ParseRequestURI(svc.URL); err != nil {
			errs = append(errs, fmt.Errorf("%s.url is invalid: %q", name, svc.URL))
		}
		if svc.Timeout < 0 {
			errs = append(errs, fmt.Errorf("%s.timeout must be >= 0", name))
		}
	}
	if c.Engine.SlotHorizonDays < 0 || c.Engine.SlotHorizonDays > 3650 {
		errs = append(errs, fmt.Errorf("engine.slot_horizon_days out of range: %d", c.Engine.SlotHorizonDays))
	}
	if c.Engine.ExpirySweepIntervalSeconds < 1 {
		errs = append(errs, fmt.Errorf("engine.expiry_sweep_interval_seconds must be >= 1"))
	}
	if c.Engine.MaxSlotsPerRequest < 1 {
		errs = append(errs, fmt.Errorf("engine.max_slots_per_request must be >= 1"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
