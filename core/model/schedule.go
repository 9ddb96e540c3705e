package model

// Request groups the inputs of a scheduling run.
type Request struct {
	Devices  []Device `json:"devices" yaml:"devices"`
	Rates    []Rate   `json:"rates" yaml:"rates"`
	MaxPower float64  `json:"maxPower" yaml:"maxPower"` // watts
}

// ConsumedEnergy reports the cost of the placed devices.
type ConsumedEnergy struct {
	Value   float64            `json:"value"`
	Devices map[string]float64 `json:"devices"`
}

// Reason explains why a device was left out of the schedule.
type Reason string

const (
	ReasonExceedsMaxPower Reason = "exceeds_max_power"
	ReasonNoFeasibleSlot  Reason = "no_feasible_slot"
	ReasonUnpricedHour    Reason = "unpriced_hour"
)

// Outcome is the allocation result for a single device.
type Outcome struct {
	DeviceID string  `json:"device_id"`
	Name     string  `json:"name"`
	Placed   bool    `json:"placed"`
	Hours    []int   `json:"hours,omitempty"`
	Cost     float64 `json:"cost,omitempty"`
	Reason   Reason  `json:"reason,omitempty"`
}

// Result is the schedule produced by a run. Schedule is indexed by hour.
type Result struct {
	Schedule       [][]string     `json:"schedule"`
	ConsumedEnergy ConsumedEnergy `json:"consumedEnergy"`
	Outcomes       []Outcome      `json:"outcomes"`

	// Load holds the committed power per hour in watts.
	Load [HoursPerDay]float64 `json:"-"`
}

// Rejected returns the outcomes of devices that could not be placed.
func (r Result) Rejected() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Placed {
			out = append(out, o)
		}
	}
	return out
}

// HoursOf returns the hours a device was scheduled in, nil if it was not placed.
func (r Result) HoursOf(deviceID string) []int {
	for _, o := range r.Outcomes {
		if o.DeviceID == deviceID && o.Placed {
			return o.Hours
		}
	}
	return nil
}
