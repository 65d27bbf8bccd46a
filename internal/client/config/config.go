package config

import (
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/reminder"
)

// Config holds runtime settings for the warranty keeper CLI.
type Config struct {
	// DatabasePath is the SQLite file holding purchases, dismissals and
	// pending reminders.
	DatabasePath string

	// ReminderClock is the time of day reminders fire at.
	ReminderClock reminder.TimeOfDay

	// DispatchInterval is how often due reminders are delivered.
	DispatchInterval time.Duration

	// DayCheckInterval is how often the calendar day is checked for a
	// rollover, which triggers a full reschedule.
	DayCheckInterval time.Duration

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "warranty.db"
	c.ReminderClock = reminder.DefaultTimeOfDay
	c.DispatchInterval = 30 * time.Second
	c.DayCheckInterval = time.Minute
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, then the config file named by
// -c/-config (if any), then command-line flags. Later sources win. args are
// the process arguments without the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
