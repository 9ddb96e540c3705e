package scheduler

import (
	"slices"

	"github.com/kilianp07/homeplan/core/model"
)

// Slot is the state of one hour of the board.
type Slot struct {
	DeviceIDs []string
	Power     float64
}

// Board accumulates committed placements. Power per hour only grows.
type Board struct {
	slots [model.HoursPerDay]Slot
}

// Power returns the power already committed at hour h.
func (b *Board) Power(h int) float64 { return b.slots[h].Power }

// Devices returns the ids committed at hour h in commit order.
func (b *Board) Devices(h int) []string { return b.slots[h].DeviceIDs }

// Fits reports whether adding power to every hour keeps the board under limit.
func (b *Board) Fits(hours []int, power, limit float64) bool {
	for _, h := range hours {
		if b.slots[h].Power+power > limit {
			return false
		}
	}
	return true
}

func (b *Board) commit(id string, hours []int, power float64) {
	for _, h := range hours {
		b.slots[h].DeviceIDs = append(b.slots[h].DeviceIDs, id)
		b.slots[h].Power += power
	}
}

// Allocate commits the cheapest candidate that fits under maxPower. The
// board is left untouched when the device is rejected.
func Allocate(b *Board, d model.Device, cands []Candidate, maxPower float64) model.Outcome {
	out := model.Outcome{DeviceID: d.ID, Name: d.Label()}
	if d.Power > maxPower {
		out.Reason = model.ReasonExceedsMaxPower
		return out
	}
	for _, c := range cands {
		if !b.Fits(c.Hours, d.Power, maxPower) {
			continue
		}
		b.commit(d.ID, c.Hours, d.Power)
		out.Placed = true
		out.Hours = slices.Clone(c.Hours)
		out.Cost = c.Cost()
		return out
	}
	out.Reason = model.ReasonNoFeasibleSlot
	return out
}
