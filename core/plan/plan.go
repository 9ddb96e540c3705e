// Package plan reads scheduling requests from YAML or JSON files.
package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/homeplan/core/model"
)

// DeviceDef is the file representation of a device.
type DeviceDef struct {
	ID       string  `yaml:"id" json:"id"`
	Name     string  `yaml:"name" json:"name"`
	Power    float64 `yaml:"power" json:"power"`
	Duration int     `yaml:"duration" json:"duration"`
	Mode     string  `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// ToModel converts the definition into a model.Device.
func (d DeviceDef) ToModel() model.Device {
	return model.Device{
		ID:       d.ID,
		Name:     d.Name,
		Power:    d.Power,
		Duration: d.Duration,
		Mode:     model.ParseMode(d.Mode),
	}
}

// Plan is a scheduling request as stored on disk.
type Plan struct {
	Name     string       `yaml:"name,omitempty" json:"name,omitempty"`
	Devices  []DeviceDef  `yaml:"devices" json:"devices"`
	Rates    []model.Rate `yaml:"rates" json:"rates"`
	MaxPower float64      `yaml:"maxPower" json:"maxPower"`
}

// Request converts the plan into a scheduler request.
func (p Plan) Request() model.Request {
	devices := make([]model.Device, len(p.Devices))
	for i, d := range p.Devices {
		devices[i] = d.ToModel()
	}
	return model.Request{Devices: devices, Rates: p.Rates, MaxPower: p.MaxPower}
}

// Load reads a plan from a .yaml, .yml or .json file.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	p, err := Decode(f, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return p, nil
}

// Decode reads a plan from r in the given format.
func Decode(r io.Reader, format string) (*Plan, error) {
	var p Plan
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&p); err != nil {
			return nil, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&p); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return &p, nil
}

// Sample returns the bundled household: a dishwasher, an oven, two always-on
// appliances and an air conditioner on a five period tariff.
func Sample() *Plan {
	return &Plan{
		Name: "sample",
		Devices: []DeviceDef{
			{ID: "F972B82BA56A70CC579945773B6866FB", Name: "Dishwasher", Power: 950, Duration: 3, Mode: "night"},
			{ID: "C515D887EDBBE669B2FDAC62F571E9E9", Name: "Oven", Power: 2000, Duration: 2, Mode: "day"},
			{ID: "02DDD23A85DADDD71198305330CC386D", Name: "Fridge", Power: 50, Duration: 24},
			{ID: "1E6276CC231716FE8EE8BC908486D41E", Name: "Thermostat", Power: 50, Duration: 24},
			{ID: "7D9DC84AD110500D284B33C82FE6E85E", Name: "Air conditioner", Power: 850, Duration: 1},
		},
		Rates: []model.Rate{
			{From: 7, To: 10, Value: 6.46},
			{From: 10, To: 17, Value: 5.38},
			{From: 17, To: 21, Value: 6.46},
			{From: 21, To: 23, Value: 5.38},
			{From: 23, To: 7, Value: 1.79},
		},
		MaxPower: 2100,
	}
}
