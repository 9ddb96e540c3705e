package metrics

import (
	"time"

	coremetrics "github.com/kilianp07/homeplan/core/metrics"
	"github.com/kilianp07/homeplan/core/model"
)

func testReport(now time.Time) coremetrics.ScheduleReport {
	res := model.Result{
		Schedule: make([][]string, model.HoursPerDay),
		ConsumedEnergy: model.ConsumedEnergy{
			Value:   21.52,
			Devices: map[string]float64{"oven": 21.52},
		},
		Outcomes: []model.Outcome{
			{DeviceID: "oven", Placed: true, Hours: []int{10, 11}, Cost: 21.52},
			{DeviceID: "heater", Reason: model.ReasonExceedsMaxPower},
		},
	}
	for h := range res.Schedule {
		res.Schedule[h] = []string{}
	}
	res.Schedule[10] = []string{"oven"}
	res.Schedule[11] = []string{"oven"}
	res.Load[10] = 2000
	res.Load[11] = 2000
	return coremetrics.ScheduleReport{RunID: "run-1", Time: now, MaxPower: 2100, Result: res}
}
