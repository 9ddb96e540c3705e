package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/homeplan/config"
	coremetrics "github.com/kilianp07/homeplan/core/metrics"
	"github.com/kilianp07/homeplan/core/model"
	coremqtt "github.com/kilianp07/homeplan/core/mqtt"
	"github.com/kilianp07/homeplan/core/scheduler"
	"github.com/kilianp07/homeplan/infra/logger"
	_ "github.com/kilianp07/homeplan/infra/metrics" // registers the built-in sinks
	"github.com/kilianp07/homeplan/infra/mqtt"
)

// Service runs the scheduler and forwards every result to the metrics sinks
// and the MQTT publisher.
type Service struct {
	Scheduler *scheduler.Scheduler
	sink      coremetrics.ScheduleSink
	pub       coremqtt.Publisher
	log       logger.Logger
	now       func() time.Time
	closers   []func() error
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if !logger.SetLevel(cfg.Log.Level) {
		return nil, fmt.Errorf("unknown log level %q", cfg.Log.Level)
	}
	logg := logger.New("service")
	sched, err := scheduler.New(cfg.Scheduler, logger.New("scheduler"))
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	svc := NewWith(sched, sink, coremqtt.NopPublisher{}, logg)
	if c, ok := sink.(coremetrics.Closer); ok {
		svc.closers = append(svc.closers, c.Close)
	}
	if cfg.MQTT.Enabled() {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.pub = pub
		svc.closers = append(svc.closers, func() error { pub.Disconnect(); return nil })
	}
	return svc, nil
}

// NewWith assembles a Service from already built parts.
func NewWith(sched *scheduler.Scheduler, sink coremetrics.ScheduleSink, pub coremqtt.Publisher, log logger.Logger) *Service {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if pub == nil {
		pub = coremqtt.NopPublisher{}
	}
	return &Service{
		Scheduler: sched,
		sink:      sink,
		pub:       pub,
		log:       logger.OrNop(log),
		now:       time.Now,
	}
}

// Run computes one schedule and reports it. Sink and publish failures are
// logged and do not discard the computed schedule.
func (s *Service) Run(ctx context.Context, req model.Request) (coremetrics.ScheduleReport, error) {
	res, err := s.Scheduler.Compute(req)
	if err != nil {
		return coremetrics.ScheduleReport{}, err
	}
	rep := coremetrics.ScheduleReport{
		RunID:    uuid.NewString(),
		Time:     s.now(),
		MaxPower: s.Scheduler.EffectiveMaxPower(req),
		Devices:  req.Devices,
		Result:   res,
	}
	s.log.Infof("run %s: %d/%d devices placed, cost %.3f", rep.RunID, rep.Placed(), len(req.Devices), res.ConsumedEnergy.Value)
	for _, o := range res.Rejected() {
		s.log.Warnf("device %s not scheduled: %s", o.DeviceID, o.Reason)
	}
	if err := s.sink.RecordSchedule(rep); err != nil {
		s.log.Errorf("record schedule: %v", err)
	}
	if err := s.pub.PublishSchedule(ctx, rep.RunID, res); err != nil {
		s.log.Errorf("publish schedule: %v", err)
	}
	return rep, nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
