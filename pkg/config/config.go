package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Window
	WindowStartHour int
	WindowEndHour   int

	// Slot enumeration and sampling
	SlotStep    int
	SampleCount int
	Seed        *uint64

	// Distributions
	IntervalLength int
	DensityFloor   float64

	// Files
	PriorsFile string
}

// Load loads configuration from environment variables. Values found in the
// given env files (or .env when none are given) are applied first without
// overriding variables that are already set.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else {
		// .env is optional
		_ = godotenv.Load()
	}

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		WindowStartHour: getIntEnv("DAYPLAN_WINDOW_START", 8),
		WindowEndHour:   getIntEnv("DAYPLAN_WINDOW_END", 18),

		SlotStep:    getIntEnv("DAYPLAN_SLOT_STEP", 15),
		SampleCount: getIntEnv("DAYPLAN_SAMPLE_COUNT", 1),
		Seed:        getUint64PtrEnv("DAYPLAN_SEED"),

		IntervalLength: getIntEnv("DAYPLAN_INTERVAL_LENGTH", 15),
		DensityFloor:   getFloatEnv("DAYPLAN_DENSITY_FLOOR", 0.0001),

		PriorsFile: getEnv("DAYPLAN_PRIORS_FILE", ""),
	}

	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch {
	case c.WindowStartHour < 0 || c.WindowStartHour > 23:
		return fmt.Errorf("DAYPLAN_WINDOW_START must be between 0 and 23, got %d", c.WindowStartHour)
	case c.WindowEndHour <= c.WindowStartHour || c.WindowEndHour > 24:
		return fmt.Errorf("DAYPLAN_WINDOW_END must be after DAYPLAN_WINDOW_START and at most 24, got %d", c.WindowEndHour)
	case c.SlotStep <= 0:
		return fmt.Errorf("DAYPLAN_SLOT_STEP must be positive, got %d", c.SlotStep)
	case c.SampleCount <= 0:
		return fmt.Errorf("DAYPLAN_SAMPLE_COUNT must be positive, got %d", c.SampleCount)
	case c.IntervalLength <= 0 || (24*60)%c.IntervalLength != 0:
		return fmt.Errorf("DAYPLAN_INTERVAL_LENGTH must divide 1440, got %d", c.IntervalLength)
	case !(c.DensityFloor > 0):
		return fmt.Errorf("DAYPLAN_DENSITY_FLOOR must be positive, got %g", c.DensityFloor)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getUint64PtrEnv(key string) *uint64 {
	if value := os.Getenv(key); value != "" {
		if u, err := strconv.ParseUint(value, 10, 64); err == nil {
			return &u
		}
	}
	return nil
}
