package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/flagx"
	"github.com/dmitrijs2005/warrantykeeper/internal/reminder"
)

// parseFlags overlays cfg with command-line flags:
//
//	-d string   database file path
//	-r string   reminder time of day, HH:MM
//	-i int      reminder dispatch interval (seconds)
//	-l string   log level (debug, info, warn, error)
//
// args are filtered with flagx.FilterArgs first so the config file flag
// does not reach this flag set.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-r", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "database file path")
	clock := fs.String("r", cfg.ReminderClock.String(), "reminder time of day (HH:MM)")
	interval := fs.Int("i", int(cfg.DispatchInterval.Seconds()), "reminder dispatch interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	tod, err := reminder.ParseTimeOfDay(*clock)
	if err != nil {
		return err
	}
	cfg.ReminderClock = tod

	if *interval <= 0 {
		return fmt.Errorf("dispatch interval must be positive, got %d", *interval)
	}
	cfg.DispatchInterval = time.Duration(*interval) * time.Second

	return nil
}
