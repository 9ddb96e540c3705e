package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	coremetrics "github.com/kilianp07/homeplan/core/metrics"
)

// PromSink exposes the latest schedule as Prometheus metrics.
type PromSink struct {
	hourLoad  *prometheus.GaugeVec
	devCost   *prometheus.GaugeVec
	totalCost prometheus.Gauge
	peakLoad  prometheus.Gauge
	rejected  *prometheus.CounterVec
	runs      prometheus.Counter

	pusher *push.Pusher
}

// PromConfig configures the Prometheus sink. When PushURL is set the sink
// uses a private registry and pushes it to a Pushgateway after each run.
type PromConfig struct {
	PushURL string `json:"push_url"`
	Job     string `json:"job"`
}

// NewPromSink registers schedule metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPushSink registers the metrics on a fresh registry pushed to cfg.PushURL.
func NewPushSink(cfg PromConfig) (*PromSink, error) {
	reg := prometheus.NewRegistry()
	s, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		return nil, err
	}
	job := cfg.Job
	if job == "" {
		job = "homeplan"
	}
	s.pusher = push.New(cfg.PushURL, job).Gatherer(reg)
	return s, nil
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		hourLoad: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "homeplan_hour_load_watts",
			Help: "Power committed per hour of the latest schedule",
		}, []string{"hour"}),
		devCost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "homeplan_device_cost",
			Help: "Energy cost of each placed device in the latest schedule",
		}, []string{"device_id"}),
		totalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "homeplan_schedule_cost",
			Help: "Total energy cost of the latest schedule",
		}),
		peakLoad: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "homeplan_schedule_peak_watts",
			Help: "Highest hourly load of the latest schedule",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "homeplan_devices_rejected_total",
			Help: "Devices left out of a schedule",
		}, []string{"reason"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "homeplan_schedule_runs_total",
			Help: "Number of completed scheduling runs",
		}),
	}
	var err error
	if s.hourLoad, err = register(reg, s.hourLoad); err != nil {
		return nil, err
	}
	if s.devCost, err = register(reg, s.devCost); err != nil {
		return nil, err
	}
	if s.totalCost, err = register(reg, s.totalCost); err != nil {
		return nil, err
	}
	if s.peakLoad, err = register(reg, s.peakLoad); err != nil {
		return nil, err
	}
	if s.rejected, err = register(reg, s.rejected); err != nil {
		return nil, err
	}
	if s.runs, err = register(reg, s.runs); err != nil {
		return nil, err
	}
	return s, nil
}

// register adds c to reg, reusing an already registered collector.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordSchedule replaces the gauges with the latest schedule.
func (s *PromSink) RecordSchedule(rep coremetrics.ScheduleReport) error {
	for h, load := range rep.Result.Load {
		s.hourLoad.WithLabelValues(strconv.Itoa(h)).Set(load)
	}
	s.devCost.Reset()
	for id, cost := range rep.Result.ConsumedEnergy.Devices {
		s.devCost.WithLabelValues(id).Set(cost)
	}
	for _, o := range rep.Result.Rejected() {
		s.rejected.WithLabelValues(string(o.Reason)).Inc()
	}
	s.totalCost.Set(rep.Result.ConsumedEnergy.Value)
	s.peakLoad.Set(rep.PeakLoad())
	s.runs.Inc()
	if s.pusher != nil {
		return s.pusher.Push()
	}
	return nil
}
