// Package metrics defines the sinks that receive schedule reports. The
// concrete Prometheus and InfluxDB sinks live in infra/metrics and register
// themselves with this package's registry.
package metrics
