package tariff

import (
	"errors"
	"fmt"

	"github.com/kilianp07/homeplan/core/model"
)

var (
	// ErrHourRange is returned for rate bounds outside 0..23.
	ErrHourRange = errors.New("rate hour out of range")
	// ErrRateValue is returned for non-positive prices.
	ErrRateValue = errors.New("rate value must be positive")
	// ErrOverlap is returned when two rates price the same hour.
	ErrOverlap = errors.New("rates overlap")
	// ErrGap is returned when an hour is not covered by any rate.
	ErrGap = errors.New("hour not covered by any rate")
)

// PriceTable maps each hour of the day to its price per kWh.
type PriceTable struct {
	prices [model.HoursPerDay]float64
	set    [model.HoursPerDay]bool
}

// Price returns the price of hour h and whether a rate covers it.
func (t *PriceTable) Price(h int) (float64, bool) {
	if h < 0 || h >= model.HoursPerDay {
		return 0, false
	}
	return t.prices[h], t.set[h]
}

// Missing lists the hours not covered by any rate.
func (t *PriceTable) Missing() []int {
	var out []int
	for h, ok := range t.set {
		if !ok {
			out = append(out, h)
		}
	}
	return out
}

// Hours returns the hours spanned by [from, to). When from > to the span
// wraps through hour 23 back to 0.
func Hours(from, to int) []int {
	n := to - from
	if from > to {
		n = model.HoursPerDay - from + to
	}
	if n <= 0 {
		return nil
	}
	hours := make([]int, 0, n)
	for h := from; len(hours) < n; h++ {
		if h >= model.HoursPerDay {
			h = 0
		}
		hours = append(hours, h)
	}
	return hours
}

// Expand builds the price table. Later rates overwrite earlier ones on
// shared hours; bounds outside 0..23 are ignored.
func Expand(rates []model.Rate) PriceTable {
	var t PriceTable
	for _, r := range rates {
		if !inRange(r.From) || !inRange(r.To) {
			continue
		}
		for _, h := range Hours(r.From, r.To) {
			t.prices[h] = r.Value
			t.set[h] = true
		}
	}
	return t
}

// Validate checks that the rates cover every hour exactly once with a
// positive price.
func Validate(rates []model.Rate) error {
	var owner [model.HoursPerDay]int
	for i := range owner {
		owner[i] = -1
	}
	for i, r := range rates {
		if !inRange(r.From) || !inRange(r.To) {
			return fmt.Errorf("rate %d [%d,%d): %w", i, r.From, r.To, ErrHourRange)
		}
		if r.Value <= 0 {
			return fmt.Errorf("rate %d: %w", i, ErrRateValue)
		}
		for _, h := range Hours(r.From, r.To) {
			if owner[h] >= 0 {
				return fmt.Errorf("hour %d priced by rates %d and %d: %w", h, owner[h], i, ErrOverlap)
			}
			owner[h] = i
		}
	}
	for h, o := range owner {
		if o < 0 {
			return fmt.Errorf("hour %d: %w", h, ErrGap)
		}
	}
	return nil
}

func inRange(h int) bool { return h >= 0 && h < model.HoursPerDay }
