package metrics

import "github.com/kilianp07/homeplan/core/factory"

var sinkRegistry = factory.NewRegistry[ScheduleSink]()

// RegisterSink adds a sink factory identified by name.
func RegisterSink(name string, f factory.Factory[ScheduleSink]) error {
	return sinkRegistry.Register(name, f)
}

// SinkTypes lists the registered sink names.
func SinkTypes() []string { return sinkRegistry.Names() }

// NewSink creates a ScheduleSink from the provided configuration. Several
// sinks are combined into a MultiSink.
func NewSink(cfgs []factory.ModuleConfig) (ScheduleSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	sinks := make([]ScheduleSink, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			closeSinks(sinks[:i])
			return nil, err
		}
		sinks[i] = s
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiSink(sinks...), nil
}

func closeSinks(sinks []ScheduleSink) {
	for _, s := range sinks {
		if c, ok := s.(Closer); ok {
			_ = c.Close()
		}
	}
}
