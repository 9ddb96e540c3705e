package model

import (
	"fmt"
	"strings"
)

// Mode restricts the hours in which a device is allowed to run.
type Mode string

const (
	// ModeAny lets the device run in any hour.
	ModeAny   Mode = ""
	ModeNight Mode = "night"
	ModeDay   Mode = "day"
)

// String returns the mode name, "any" for the unset mode.
func (m Mode) String() string {
	if m == ModeAny {
		return "any"
	}
	return string(m)
}

// ParseMode normalises a mode read from a plan file. Unknown values are kept
// as-is; the scheduler treats them like ModeAny.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return ModeAny
	case "night":
		return ModeNight
	case "day":
		return ModeDay
	default:
		return Mode(s)
	}
}

// Device represents a household appliance to be placed in the schedule.
type Device struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Power    float64 `json:"power" yaml:"power"`       // power draw in watts
	Duration int     `json:"duration" yaml:"duration"` // contiguous run length in hours
	Mode     Mode    `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// Validate checks the device is usable by the scheduler.
func (d Device) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("device id is required")
	}
	if d.Power <= 0 {
		return fmt.Errorf("device %s: power must be positive", d.ID)
	}
	if d.Duration < 1 || d.Duration > HoursPerDay {
		return fmt.Errorf("device %s: duration must be within 1..%d", d.ID, HoursPerDay)
	}
	return nil
}

// Label returns the display name, falling back to the identifier.
func (d Device) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}
