package mqtt

import (
	"context"

	"github.com/kilianp07/homeplan/core/model"
)

// Publisher announces computed schedules to the devices' controllers.
type Publisher interface {
	// PublishSchedule sends one message per device plus a summary of the
	// run identified by runID.
	PublishSchedule(ctx context.Context, runID string, res model.Result) error
}

// DeviceMessage is the payload published for a single device.
type DeviceMessage struct {
	RunID     string       `json:"run_id"`
	DeviceID  string       `json:"device_id"`
	Placed    bool         `json:"placed"`
	Hours     []int        `json:"hours"`
	Cost      float64      `json:"cost"`
	Reason    model.Reason `json:"reason,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

// SummaryMessage is the payload published for the whole schedule.
type SummaryMessage struct {
	RunID          string               `json:"run_id"`
	Schedule       [][]string           `json:"schedule"`
	ConsumedEnergy model.ConsumedEnergy `json:"consumedEnergy"`
	Timestamp      int64                `json:"timestamp"`
}

// NopPublisher drops every schedule.
type NopPublisher struct{}

func (NopPublisher) PublishSchedule(context.Context, string, model.Result) error { return nil }
