package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/homeplan/core/metrics"
	"github.com/kilianp07/homeplan/infra/logger"
)

// InfluxConfig holds the InfluxDB connection settings.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes schedules to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.ScheduleSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSchedule writes one point per hour, one per device and a run
// summary in a single batch. Hour points are stamped at the matching hour of
// the run's day.
func (s *InfluxSink) RecordSchedule(rep coremetrics.ScheduleReport) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, schedulePoints(rep)...)
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func schedulePoints(rep coremetrics.ScheduleReport) []*write.Point {
	day := time.Date(rep.Time.Year(), rep.Time.Month(), rep.Time.Day(), 0, 0, 0, 0, rep.Time.Location())
	points := make([]*write.Point, 0, len(rep.Result.Load)+len(rep.Result.Outcomes)+1)
	for h, load := range rep.Result.Load {
		points = append(points, write.NewPointWithMeasurement("schedule_hour").
			AddTag("run_id", rep.RunID).
			AddTag("hour", strconv.Itoa(h)).
			AddField("load_w", round3(load)).
			AddField("devices", len(rep.Result.Schedule[h])).
			SetTime(day.Add(time.Duration(h)*time.Hour)))
	}
	for _, o := range rep.Result.Outcomes {
		p := write.NewPointWithMeasurement("device_schedule").
			AddTag("run_id", rep.RunID).
			AddTag("device_id", o.DeviceID).
			AddTag("placed", strconv.FormatBool(o.Placed)).
			SetTime(rep.Time)
		if o.Placed {
			p.AddField("cost", round3(o.Cost)).
				AddField("start_hour", o.Hours[0]).
				AddField("duration_h", len(o.Hours))
		} else {
			p.AddTag("reason", string(o.Reason)).AddField("cost", 0.0)
		}
		points = append(points, p)
	}
	points = append(points, write.NewPointWithMeasurement("schedule_run").
		AddTag("run_id", rep.RunID).
		AddField("total_cost", rep.Result.ConsumedEnergy.Value).
		AddField("peak_load_w", round3(rep.PeakLoad())).
		AddField("max_power_w", round3(rep.MaxPower)).
		AddField("placed", rep.Placed()).
		AddField("rejected", len(rep.Result.Outcomes)-rep.Placed()).
		SetTime(rep.Time))
	return points
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
