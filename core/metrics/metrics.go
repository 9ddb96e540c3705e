package metrics

import (
	"time"

	"github.com/kilianp07/homeplan/core/model"
)

// ScheduleReport describes one completed scheduling run.
type ScheduleReport struct {
	RunID    string
	Time     time.Time
	MaxPower float64
	Devices  []model.Device
	Result   model.Result
}

// Placed counts the devices that made it into the schedule.
func (r ScheduleReport) Placed() int {
	n := 0
	for _, o := range r.Result.Outcomes {
		if o.Placed {
			n++
		}
	}
	return n
}

// PeakLoad returns the highest committed hourly load in watts.
func (r ScheduleReport) PeakLoad() float64 {
	peak := 0.0
	for _, p := range r.Result.Load {
		if p > peak {
			peak = p
		}
	}
	return peak
}

// ScheduleSink records schedule reports for observability purposes.
type ScheduleSink interface {
	RecordSchedule(rep ScheduleReport) error
}

// Closer is implemented by sinks holding connections.
type Closer interface {
	Close() error
}

// NopSink implements ScheduleSink with a no-op method.
type NopSink struct{}

func (NopSink) RecordSchedule(ScheduleReport) error { return nil }
