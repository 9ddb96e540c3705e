package mqtt

import (
	"context"
	"fmt"
	"sync"

	coremqtt "github.com/kilianp07/homeplan/core/mqtt"
	"github.com/kilianp07/homeplan/core/model"
)

// Publisher mirrors the core mqtt.Publisher interface.
type Publisher = coremqtt.Publisher

// MockPublisher records published schedules. It is used in tests.
type MockPublisher struct {
	Runs map[string]model.Result
	Fail bool
	mu   sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Runs: make(map[string]model.Result)}
}

// PublishSchedule stores the result or fails when configured to.
func (m *MockPublisher) PublishSchedule(_ context.Context, runID string, res model.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("%w: mock", coremqtt.ErrPublish)
	}
	m.Runs[runID] = res
	return nil
}
