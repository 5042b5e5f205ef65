package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Payment  PaymentConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	Timezone    string
	SeedOnStart bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type PaymentConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Currency  string
	Timeout   time.Duration
}

// Enabled reports whether gateway credentials are present.
func (c PaymentConfig) Enabled() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// BookingConfig holds the seating chart and screening window policy.
type BookingConfig struct {
	SeatRows     int
	SeatColumns  int
	ShowDuration time.Duration
}

// Location resolves APP_TIMEZONE, falling back to the host zone.
func (c AppConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// LoadConfigFile reads path (when it exists) and overlays the environment.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "movie-booking")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("APP_TIMEZONE", "Local")
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("PGHOST", "localhost")
	v.SetDefault("PGPORT", "5432")
	v.SetDefault("PGSSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1")
	v.SetDefault("RAZORPAY_CURRENCY", "INR")
	v.SetDefault("RAZORPAY_TIMEOUT", "10s")
	v.SetDefault("SEAT_ROWS", 5)
	v.SetDefault("SEAT_COLUMNS", 6)
	v.SetDefault("SHOW_DURATION", "2h15m")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			Timezone:    v.GetString("APP_TIMEZONE"),
			SeedOnStart: v.GetBool("SEED_ON_START"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("PGHOST"),
			Port:     v.GetString("PGPORT"),
			Name:     v.GetString("PGDATABASE"),
			User:     v.GetString("PGUSER"),
			Password: v.GetString("PGPASSWORD"),
			SSLMode:  v.GetString("PGSSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Payment: PaymentConfig{
			KeyID:     v.GetString("RAZORPAY_KEY_ID"),
			KeySecret: v.GetString("RAZORPAY_KEY_SECRET"),
			BaseURL:   v.GetString("RAZORPAY_BASE_URL"),
			Currency:  v.GetString("RAZORPAY_CURRENCY"),
			Timeout:   v.GetDuration("RAZORPAY_TIMEOUT"),
		},
		Booking: BookingConfig{
			SeatRows:     v.GetInt("SEAT_ROWS"),
			SeatColumns:  v.GetInt("SEAT_COLUMNS"),
			ShowDuration: v.GetDuration("SHOW_DURATION"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Name == "" {
		errs = append(errs, errors.New("PGDATABASE is required"))
	}
	if c.Database.User == "" {
		errs = append(errs, errors.New("PGUSER is required"))
	}
	if c.Booking.SeatRows < 1 || c.Booking.SeatRows > 26 {
		errs = append(errs, fmt.Errorf("SEAT_ROWS must be between 1 and 26, got %d", c.Booking.SeatRows))
	}
	if c.Booking.SeatColumns < 1 {
		errs = append(errs, fmt.Errorf("SEAT_COLUMNS must be positive, got %d", c.Booking.SeatColumns))
	}
	if c.Booking.ShowDuration <= 0 {
		errs = append(errs, fmt.Errorf("SHOW_DURATION must be positive, got %s", c.Booking.ShowDuration))
	}
	if _, err := c.App.Location(); err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}
