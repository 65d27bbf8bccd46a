package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/warrantykeeper/internal/flagx"
	"github.com/dmitrijs2005/warrantykeeper/internal/reminder"
	"github.com/dmitrijs2005/warrantykeeper/internal/timex"
)

// FileConfig is the on-disk shape of the config file. Empty fields leave
// the current value untouched.
type FileConfig struct {
	DatabasePath     string         `json:"database_path" yaml:"database_path"`
	ReminderClock    string         `json:"reminder_clock" yaml:"reminder_clock"`
	DispatchInterval timex.Duration `json:"dispatch_interval" yaml:"dispatch_interval"`
	DayCheckInterval timex.Duration `json:"day_check_interval" yaml:"day_check_interval"`
	LogLevel         string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file selected by -c/-config. Files ending
// in .yaml or .yml are decoded as YAML, everything else as JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	return fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) error {
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.ReminderClock != "" {
		tod, err := reminder.ParseTimeOfDay(fc.ReminderClock)
		if err != nil {
			return err
		}
		cfg.ReminderClock = tod
	}
	if fc.DispatchInterval.Duration > 0 {
		cfg.DispatchInterval = fc.DispatchInterval.Duration
	}
	if fc.DayCheckInterval.Duration > 0 {
		cfg.DayCheckInterval = fc.DayCheckInterval.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return nil
}
