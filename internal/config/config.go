package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
	JWTSecret   string   `mapstructure:"JWT_SECRET"`
	JWTIssuer   string   `mapstructure:"JWT_ISSUER"`

	// Clinic operating window. Mutating actions (appointments, lab requests,
	// prescriptions) are accepted in [open, close) only.
	ClinicOpenHour  int `mapstructure:"CLINIC_OPEN_HOUR"`
	ClinicCloseHour int `mapstructure:"CLINIC_CLOSE_HOUR"`

	// Slot cadence and hours excluded from the availability grid
	// (comma-separated 24h hours, e.g. "12" for the lunch break).
	SlotIntervalMin  int    `mapstructure:"CLINIC_SLOT_INTERVAL_MIN"`
	SlotExcludeHours string `mapstructure:"CLINIC_SLOT_EXCLUDE_HOURS"`
	LastBookableHour int    `mapstructure:"CLINIC_LAST_BOOKABLE_HOUR"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("JWT_ISSUER", "clinicore")
	v.SetDefault("CLINIC_OPEN_HOUR", 8)
	v.SetDefault("CLINIC_CLOSE_HOUR", 18)
	v.SetDefault("CLINIC_SLOT_INTERVAL_MIN", 15)
	v.SetDefault("CLINIC_SLOT_EXCLUDE_HOURS", "12")
	v.SetDefault("CLINIC_LAST_BOOKABLE_HOUR", 17)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_ISSUER")
	v.BindEnv("CLINIC_OPEN_HOUR")
	v.BindEnv("CLINIC_CLOSE_HOUR")
	v.BindEnv("CLINIC_SLOT_INTERVAL_MIN")
	v.BindEnv("CLINIC_SLOT_EXCLUDE_HOURS")
	v.BindEnv("CLINIC_LAST_BOOKABLE_HOUR")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Outside development
// a JWT secret must be set so that real authentication is enforced, and the
// clinic window must describe a non-empty day.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV is not development")
	}
	if c.ClinicOpenHour < 0 || c.ClinicOpenHour > 23 {
		return fmt.Errorf("CLINIC_OPEN_HOUR must be in 0..23, got %d", c.ClinicOpenHour)
	}
	if c.ClinicCloseHour < 1 || c.ClinicCloseHour > 24 {
		return fmt.Errorf("CLINIC_CLOSE_HOUR must be in 1..24, got %d", c.ClinicCloseHour)
	}
	if c.ClinicOpenHour >= c.ClinicCloseHour {
		return fmt.Errorf("clinic window is empty: open=%d close=%d", c.ClinicOpenHour, c.ClinicCloseHour)
	}
	if c.SlotIntervalMin <= 0 || 60%c.SlotIntervalMin != 0 {
		return fmt.Errorf("CLINIC_SLOT_INTERVAL_MIN must divide 60, got %d", c.SlotIntervalMin)
	}
	if c.LastBookableHour < c.ClinicOpenHour || c.LastBookableHour >= c.ClinicCloseHour {
		return fmt.Errorf("CLINIC_LAST_BOOKABLE_HOUR must be inside the clinic window, got %d", c.LastBookableHour)
	}
	if _, err := c.ExcludedHours(); err != nil {
		return err
	}
	return nil
}

// ExcludedHours parses CLINIC_SLOT_EXCLUDE_HOURS into a set of 24h hours that
// are skipped when expanding a duty day into bookable times.
func (c *Config) ExcludedHours() (map[int]bool, error) {
	excluded := make(map[int]bool)
	if c.SlotExcludeHours == "" {
		return excluded, nil
	}
	for _, part := range strings.Split(c.SlotExcludeHours, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		h, err := strconv.Atoi(part)
		if err != nil || h < 0 || h > 23 {
			return nil, fmt.Errorf("CLINIC_SLOT_EXCLUDE_HOURS contains invalid hour %q", part)
		}
		excluded[h] = true
	}
	return excluded, nil
}
