// Package config loads runtime configuration for the warranty keeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml/.yml are read as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   database file path
//	-r string   reminder time of day (HH:MM)
//	-i int      reminder dispatch interval (seconds)
//	-l string   log level
//
// # File schema
//
// Intervals use timex.Duration, so they can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "database_path": "warranty.db",
//	  "reminder_clock": "09:00",
//	  "dispatch_interval": "30s",
//	  "day_check_interval": "1m",
//	  "log_level": "info"
//	}
package config
