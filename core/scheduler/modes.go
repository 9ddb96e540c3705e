package scheduler

import (
	"slices"

	"github.com/kilianp07/homeplan/core/model"
)

// ModeTable resolves a work mode to its ordered allowed hours.
type ModeTable struct {
	modes    map[model.Mode][]int
	fallback []int
}

// NewModeTable copies the configured modes. The fallback used for unset or
// unknown modes is the sorted union of every configured mode.
func NewModeTable(modes map[string][]int) ModeTable {
	t := ModeTable{modes: make(map[model.Mode][]int, len(modes))}
	seen := make(map[int]bool)
	for name, hours := range modes {
		t.modes[model.Mode(name)] = slices.Clone(hours)
		for _, h := range hours {
			if !seen[h] {
				seen[h] = true
				t.fallback = append(t.fallback, h)
			}
		}
	}
	slices.Sort(t.fallback)
	return t
}

// Allowed returns the hours a device in mode m may use.
func (t ModeTable) Allowed(m model.Mode) []int {
	if hours, ok := t.modes[m]; ok && m != model.ModeAny {
		return hours
	}
	return t.fallback
}
