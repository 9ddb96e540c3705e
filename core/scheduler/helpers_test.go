package scheduler

import "github.com/kilianp07/homeplan/core/model"

func sampleRates() []model.Rate {
	return []model.Rate{
		{From: 7, To: 10, Value: 6.46},
		{From: 10, To: 17, Value: 5.38},
		{From: 17, To: 21, Value: 6.46},
		{From: 21, To: 23, Value: 5.38},
		{From: 23, To: 7, Value: 1.79},
	}
}

func sampleDevices() []model.Device {
	return []model.Device{
		{ID: "dishwasher", Name: "Dishwasher", Power: 950, Duration: 3, Mode: model.ModeNight},
		{ID: "oven", Name: "Oven", Power: 2000, Duration: 2, Mode: model.ModeDay},
		{ID: "fridge", Name: "Fridge", Power: 50, Duration: 24},
		{ID: "thermostat", Name: "Thermostat", Power: 50, Duration: 24},
		{ID: "aircon", Name: "Air conditioner", Power: 850, Duration: 1},
	}
}

