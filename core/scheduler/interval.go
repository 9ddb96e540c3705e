package scheduler

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/homeplan/core/model"
	"github.com/kilianp07/homeplan/core/tariff"
)

// ErrUnpricedHour is returned when a window uses an hour without a rate.
var ErrUnpricedHour = errors.New("hour has no tariff")

// Candidate is one contiguous window of a device's allowed hours.
type Candidate struct {
	Hours []int
	// Price is the sum of hourly price times device power (W x price/kWh).
	Price float64
}

// Cost converts the window price into the tariff currency.
func (c Candidate) Cost() float64 { return c.Price / 1000 }

// GenerateCandidates slides a window of d.Duration over allowed and prices
// each position. The result is sorted by ascending price; ties keep the
// earliest window first.
func GenerateCandidates(d model.Device, allowed []int, prices *tariff.PriceTable) ([]Candidate, error) {
	if d.Duration <= 0 || len(allowed) < d.Duration {
		return nil, nil
	}
	hourly := make([]float64, len(allowed))
	for i, h := range allowed {
		p, ok := prices.Price(h)
		if !ok {
			return nil, fmt.Errorf("device %s hour %d: %w", d.ID, h, ErrUnpricedHour)
		}
		hourly[i] = p * d.Power
	}

	cands := make([]Candidate, 0, len(allowed)-d.Duration+1)
	for start := 0; start+d.Duration <= len(allowed); start++ {
		end := start + d.Duration
		cands = append(cands, Candidate{
			Hours: slices.Clone(allowed[start:end]),
			Price: floats.Sum(hourly[start:end]),
		})
	}
	slices.SortStableFunc(cands, func(a, b Candidate) int {
		return cmp.Compare(a.Price, b.Price)
	})
	return cands, nil
}
