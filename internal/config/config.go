package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// EnvPrefix prefixes every environment override, e.g. STUDIO_DATABASE_PASSWORD
const EnvPrefix = "STUDIO"

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Studio   StudioConfig   `toml:"studio"`
	Admin    AdminConfig    `toml:"admin"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig timeouts are in seconds
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig ConnMaxLifetime is in seconds
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN returns a lib/pq connection URL
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// LogsConfig Format is text or json; an empty File logs to stdout only
type LogsConfig struct {
	File       string `toml:"file" split_words:"true"`
	Level      string `toml:"level" split_words:"true"`
	Format     string `toml:"format" split_words:"true"`
	MaxSizeMB  int    `toml:"max_size_mb" split_words:"true"`
	MaxBackups int    `toml:"max_backups" split_words:"true"`
	MaxAgeDays int    `toml:"max_age_days" split_words:"true"`
	Compress   bool   `toml:"compress" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// StudioConfig holds the settings used until an admin stores their own
type StudioConfig struct {
	Timezone             string   `toml:"timezone" split_words:"true"`
	SeatsPerSlot         int      `toml:"seats_per_slot" split_words:"true"`
	SeatsRestrictedPlans int      `toml:"seats_restricted_plans" split_words:"true"`
	OpenTime             string   `toml:"open_time" split_words:"true"`
	CloseTime            string   `toml:"close_time" split_words:"true"`
	SlotMinutes          int      `toml:"slot_minutes" split_words:"true"`
	RestrictedPlans      []string `toml:"restricted_plans" split_words:"true"`
}

type AdminConfig struct {
	Emails []string `toml:"emails" split_words:"true"`
}

type EventsConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	URL      string `toml:"url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
}

// Default returns the configuration used when a key is absent from file and environment
func Default() *Config {
	d := domain.DefaultStudioSettings()
	plans := make([]string, 0, len(d.RestrictedPlans))
	for _, p := range d.RestrictedPlans {
		plans = append(plans, string(p))
	}

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
			User:            "studio",
			DBName:          "studio",
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "studio-booking",
		},
		Studio: StudioConfig{
			Timezone:             "UTC",
			SeatsPerSlot:         d.SeatsPerSlot,
			SeatsRestrictedPlans: d.SeatsRestrictedPlans,
			OpenTime:             d.OpenTime.String(),
			CloseTime:            d.CloseTime.String(),
			SlotMinutes:          d.SlotMinutes,
			RestrictedPlans:      plans,
		},
		Events: EventsConfig{
			Exchange: "studio.bookings",
		},
	}
}

// Load reads path over the defaults, applies STUDIO_* environment overrides and validates.
// A missing file is an error only when path is not empty.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be 1..65535")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	switch strings.ToLower(c.Logs.Format) {
	case "text", "json":
	default:
		problems = append(problems, "logs.format must be text or json")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	if _, err := time.LoadLocation(c.Studio.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("studio.timezone: %v", err))
	}
	if _, err := types.NewTimeStringFromString(c.Studio.OpenTime); err != nil {
		problems = append(problems, "studio.open_time must be HH:MM")
	}
	if _, err := types.NewTimeStringFromString(c.Studio.CloseTime); err != nil {
		problems = append(problems, "studio.close_time must be HH:MM")
	}
	if c.Events.Enabled && c.Events.URL == "" {
		problems = append(problems, "events.url is required when events are enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the studio time zone; Validate guarantees it loads
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Studio.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StudioSettings converts the studio section into default settings.
// Grid and capacity rules are checked by the settings service.
func (c *Config) StudioSettings() *domain.StudioSettings {
	plans := make([]domain.PlanTier, 0, len(c.Studio.RestrictedPlans))
	for _, p := range c.Studio.RestrictedPlans {
		if p = strings.TrimSpace(p); p != "" {
			plans = append(plans, domain.PlanTier(p))
		}
	}
	open, _ := types.NewTimeStringFromString(c.Studio.OpenTime)
	closing, _ := types.NewTimeStringFromString(c.Studio.CloseTime)

	return &domain.StudioSettings{
		SeatsPerSlot:         c.Studio.SeatsPerSlot,
		SeatsRestrictedPlans: c.Studio.SeatsRestrictedPlans,
		OpenTime:             open,
		CloseTime:            closing,
		SlotMinutes:          c.Studio.SlotMinutes,
		RestrictedPlans:      plans,
	}
}
