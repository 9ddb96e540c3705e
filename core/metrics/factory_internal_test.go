package metrics

import (
	"errors"
	"testing"

	"github.com/kilianp07/homeplan/core/factory"
)

// TestNewSinkClosesBuiltOnError checks sinks created before a failing one
// are closed.
func TestNewSinkClosesBuiltOnError(t *testing.T) {
	built := &recordSink{}
	if err := RegisterSink("test-closable", func(map[string]any) (ScheduleSink, error) {
		return built, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := RegisterSink("test-broken", func(map[string]any) (ScheduleSink, error) {
		return nil, errors.New("unreachable backend")
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := NewSink([]factory.ModuleConfig{{Type: "test-closable"}, {Type: "test-broken"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !built.closed {
		t.Fatal("built sink was not closed")
	}
}
