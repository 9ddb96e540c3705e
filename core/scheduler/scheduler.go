package scheduler

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/kilianp07/homeplan/core/logger"
	"github.com/kilianp07/homeplan/core/model"
	"github.com/kilianp07/homeplan/core/tariff"
)

var (
	// ErrInvalidDevice wraps device validation failures.
	ErrInvalidDevice = errors.New("invalid device")
	// ErrInvalidTariff wraps tariff validation failures in strict mode.
	ErrInvalidTariff = errors.New("invalid tariff")
	// ErrMaxPower is returned when no positive power ceiling is available.
	ErrMaxPower = errors.New("max power must be positive")
)

// costPrecision is the number of decimals kept on the total cost.
const costPrecision = 3

// Scheduler computes device schedules. It holds configuration only and may
// be reused for any number of runs.
type Scheduler struct {
	cfg   Config
	modes ModeTable
	log   logger.Logger
}

// New returns a Scheduler. Missing modes are filled with DefaultModes and a
// nil logger discards output.
func New(cfg Config, log logger.Logger) (*Scheduler, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{cfg: cfg, modes: NewModeTable(cfg.Modes), log: logger.OrNop(log)}, nil
}

// Modes exposes the resolved mode table.
func (s *Scheduler) Modes() ModeTable { return s.modes }

// Compute runs the greedy placement for req. Device problems that only
// affect one device are reported in Result.Outcomes; malformed input is
// returned as an error.
func (s *Scheduler) Compute(req model.Request) (model.Result, error) {
	if err := s.Validate(req); err != nil {
		return model.Result{}, err
	}
	maxPower := s.EffectiveMaxPower(req)

	prices := tariff.Expand(req.Rates)
	devices := byPriority(req.Devices)
	board := &Board{}
	res := model.Result{
		ConsumedEnergy: model.ConsumedEnergy{Devices: make(map[string]float64)},
		Outcomes:       make([]model.Outcome, 0, len(devices)),
	}

	for _, d := range devices {
		out := s.place(board, d, &prices, maxPower)
		if out.Placed {
			res.ConsumedEnergy.Devices[d.ID] = out.Cost
			res.ConsumedEnergy.Value += out.Cost
		}
		res.Outcomes = append(res.Outcomes, out)
	}
	res.ConsumedEnergy.Value = scalar.Round(res.ConsumedEnergy.Value, costPrecision)

	res.Schedule = make([][]string, model.HoursPerDay)
	for h := range res.Schedule {
		res.Schedule[h] = slices.Clone(board.Devices(h))
		if res.Schedule[h] == nil {
			res.Schedule[h] = []string{}
		}
		res.Load[h] = board.Power(h)
	}
	return res, nil
}

// EffectiveMaxPower returns the ceiling applied to req: its own MaxPower, or
// the configured one when the request leaves it at zero.
func (s *Scheduler) EffectiveMaxPower(req model.Request) float64 {
	if req.MaxPower == 0 {
		return s.cfg.MaxPower
	}
	return req.MaxPower
}

// Validate reports the input errors Compute would fail with.
func (s *Scheduler) Validate(req model.Request) error {
	if s.EffectiveMaxPower(req) <= 0 {
		return ErrMaxPower
	}
	if err := validateDevices(req.Devices); err != nil {
		return err
	}
	if s.cfg.StrictTariff {
		if err := tariff.Validate(req.Rates); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTariff, err)
		}
	}
	return nil
}

func (s *Scheduler) place(b *Board, d model.Device, prices *tariff.PriceTable, maxPower float64) model.Outcome {
	if d.Power > maxPower {
		s.log.Warnf("device %s not scheduled: %s", d.ID, model.ReasonExceedsMaxPower)
		return Allocate(b, d, nil, maxPower)
	}
	cands, err := GenerateCandidates(d, s.modes.Allowed(d.Mode), prices)
	if err != nil {
		s.log.Warnf("device %s not scheduled: %v", d.ID, err)
		return model.Outcome{DeviceID: d.ID, Name: d.Label(), Reason: model.ReasonUnpricedHour}
	}
	out := Allocate(b, d, cands, maxPower)
	if out.Placed {
		s.log.Debugw("device placed", map[string]any{
			"device_id": d.ID,
			"hours":     out.Hours,
			"cost":      out.Cost,
		})
	} else {
		s.log.Warnf("device %s not scheduled: %s", d.ID, out.Reason)
	}
	return out
}

// byPriority returns a copy of devices ordered by descending power. Equal
// power keeps the input order.
func byPriority(devices []model.Device) []model.Device {
	sorted := slices.Clone(devices)
	slices.SortStableFunc(sorted, func(a, b model.Device) int {
		return cmp.Compare(b.Power, a.Power)
	})
	return sorted
}

func validateDevices(devices []model.Device) error {
	seen := make(map[string]bool, len(devices))
	for _, d := range devices {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDevice, err)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidDevice, d.ID)
		}
		seen[d.ID] = true
	}
	return nil
}
