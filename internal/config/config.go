// Package config загружает конфигурацию сервиса из TOML файла
// с переопределением через переменные окружения BOOKING_*.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "BOOKING"

// Драйверы уведомлений об освободившемся слоте
const (
	NotificationDriverHTTP = "http"
	NotificationDriverAMQP = "amqp"
	NotificationDriverLog  = "log"
)

// ErrInvalidConfig конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server" envconfig:"SERVER"`
	Database      DatabaseConfig      `toml:"database" envconfig:"DATABASE"`
	Logs          LogsConfig          `toml:"logs" envconfig:"LOGS"`
	Metrics       MetricsConfig       `toml:"metrics" envconfig:"METRICS"`
	Pricing       PricingConfig       `toml:"pricing" envconfig:"PRICING"`
	Venue         VenueConfig         `toml:"venue" envconfig:"VENUE"`
	Notifications NotificationsConfig `toml:"notifications" envconfig:"NOTIFICATIONS"`
	RateLimit     RateLimitConfig     `toml:"rate_limit" envconfig:"RATE_LIMIT"`
	CORS          CORSConfig          `toml:"cors" envconfig:"CORS"`
}

// ServerConfig HTTP сервер. Таймауты в секундах.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" envconfig:"HOST"`
	Port            int    `toml:"port" envconfig:"PORT"`
	User            string `toml:"user" envconfig:"USER"`
	Password        string `toml:"password" envconfig:"PASSWORD"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"` // секунды
	TxMaxAttempts   int    `toml:"tx_max_attempts" envconfig:"TX_MAX_ATTEMPTS"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig логирование. Пустой File - только stdout.
type LogsConfig struct {
	Level string `toml:"level" envconfig:"LEVEL"`
	File  string `toml:"file" envconfig:"FILE"`
}

// MetricsConfig Prometheus метрики
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"ENABLED"`
	Path        string `toml:"path" envconfig:"PATH"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

// PricingConfig часовой пояс площадки: в нём считаются часы пик, выходные и кратность часу
type PricingConfig struct {
	Timezone string `toml:"timezone" envconfig:"TIMEZONE"`
}

// VenueConfig часы работы площадки для расписания корта на день
type VenueConfig struct {
	OpeningHour        int `toml:"opening_hour" envconfig:"OPENING_HOUR"`
	ClosingHour        int `toml:"closing_hour" envconfig:"CLOSING_HOUR"`
	AdvanceBookingDays int `toml:"advance_booking_days" envconfig:"ADVANCE_BOOKING_DAYS"` // 0 - без ограничения
}

// NotificationsConfig доставка уведомлений о продвижении в очереди ожидания
type NotificationsConfig struct {
	Driver   string `toml:"driver" envconfig:"DRIVER"` // http, amqp, log
	URL      string `toml:"url" envconfig:"URL"`
	Timeout  int    `toml:"timeout" envconfig:"TIMEOUT"` // секунды
	AMQPURL  string `toml:"amqp_url" envconfig:"AMQP_URL"`
	Exchange string `toml:"exchange" envconfig:"EXCHANGE"`
}

// RateLimitConfig ограничение частоты изменяющих запросов на пользователя
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `toml:"rps" envconfig:"RPS"`
	Burst   int     `toml:"burst" envconfig:"BURST"`
	TTL     int     `toml:"ttl" envconfig:"TTL"` // секунды
}

// CORSConfig разрешённые источники для браузерного клиента
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

// Default значения по умолчанию, поверх них читается файл
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "court_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxMaxAttempts:   3,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "court_booking_service",
		},
		Pricing: PricingConfig{
			Timezone: "UTC",
		},
		Venue: VenueConfig{
			OpeningHour:        domain.DefaultOpeningHour,
			ClosingHour:        domain.DefaultClosingHour,
			AdvanceBookingDays: 30,
		},
		Notifications: NotificationsConfig{
			Driver:   NotificationDriverLog,
			Timeout:  5,
			Exchange: "court_booking.events",
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     5,
			Burst:   10,
			TTL:     600,
		},
	}
}

// Load читает конфигурацию: значения по умолчанию, затем файл, затем .env и окружение.
// Отсутствующий файл не ошибка, если всё задано через окружение.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	// .env нужен только при локальной разработке
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: process env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if c.Database.TxMaxAttempts <= 0 {
		problems = append(problems, "database.tx_max_attempts must be positive")
	}
	if _, err := time.LoadLocation(c.Pricing.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("pricing.timezone %q is unknown", c.Pricing.Timezone))
	}
	if c.Venue.OpeningHour < 0 || c.Venue.OpeningHour >= c.Venue.ClosingHour || c.Venue.ClosingHour > 24 {
		problems = append(problems, "venue hours must satisfy 0 <= opening_hour < closing_hour <= 24")
	}
	if c.Venue.AdvanceBookingDays < 0 {
		problems = append(problems, "venue.advance_booking_days must not be negative")
	}

	switch c.Notifications.Driver {
	case NotificationDriverLog:
	case NotificationDriverHTTP:
		if c.Notifications.URL == "" {
			problems = append(problems, "notifications.url is required for http driver")
		}
	case NotificationDriverAMQP:
		if c.Notifications.AMQPURL == "" || c.Notifications.Exchange == "" {
			problems = append(problems, "notifications.amqp_url and notifications.exchange are required for amqp driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("notifications.driver %q must be http, amqp or log", c.Notifications.Driver))
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "rate_limit.rps and rate_limit.burst must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Location часовой пояс площадки. Вызывать после Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Pricing.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
