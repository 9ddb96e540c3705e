package metrics

import "errors"

// MultiSink fans schedule reports out to several sinks.
type MultiSink struct {
	Sinks []ScheduleSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...ScheduleSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSchedule forwards the report to every sink and joins their errors.
func (m *MultiSink) RecordSchedule(rep ScheduleReport) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordSchedule(rep); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes the sinks that hold resources.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
