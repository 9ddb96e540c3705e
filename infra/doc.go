// Package infra contains technical adapters such as the MQTT schedule
// publisher, the metrics sinks and the zerolog logger. These packages
// depend only on the interfaces defined in the core packages.
package infra
