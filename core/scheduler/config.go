package scheduler

import (
	"fmt"

	"github.com/kilianp07/homeplan/core/model"
)

// Config defines scheduling parameters loaded from configuration.
type Config struct {
	// StrictTariff rejects tariffs with gaps or overlaps before scheduling.
	// When false, unpriced hours only reject the devices that would use them.
	StrictTariff bool `json:"strict_tariff"`
	// MaxPower is the ceiling used when a request carries none, in watts.
	MaxPower float64 `json:"max_power"`
	// Modes overrides the allowed-hour sequence of each work mode.
	Modes map[string][]int `json:"modes"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{StrictTariff: true}
}

// SetDefaults merges the configured modes over DefaultModes. A configured
// mode replaces the built-in one of the same name; the others are kept.
func (c *Config) SetDefaults() {
	modes := DefaultModes()
	for name, hours := range c.Modes {
		modes[name] = hours
	}
	c.Modes = modes
}

// Validate checks the mode table only holds valid hours.
func (c Config) Validate() error {
	if c.MaxPower < 0 {
		return fmt.Errorf("max_power must not be negative")
	}
	for name, hours := range c.Modes {
		if name == "" {
			return fmt.Errorf("mode name is required")
		}
		if len(hours) == 0 {
			return fmt.Errorf("mode %s has no hours", name)
		}
		seen := make(map[int]bool, len(hours))
		for _, h := range hours {
			if h < 0 || h >= model.HoursPerDay {
				return fmt.Errorf("mode %s: hour %d out of range", name, h)
			}
			if seen[h] {
				return fmt.Errorf("mode %s: hour %d listed twice", name, h)
			}
			seen[h] = true
		}
	}
	return nil
}

// DefaultModes returns the built-in night and day sequences. The night
// sequence keeps its evening-first order so windows may span midnight.
func DefaultModes() map[string][]int {
	return map[string][]int{
		string(model.ModeNight): {21, 22, 23, 0, 1, 2, 3, 4, 5, 6},
		string(model.ModeDay):   {7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
	}
}
