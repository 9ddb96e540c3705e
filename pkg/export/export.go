// Package export renders schedule results for people and other tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/homeplan/core/model"
)

// WriteJSON writes the result to w as indented JSON.
func WriteJSON(w io.Writer, res model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes one row per hour with the device IDs joined by ';' and the
// committed load in watts.
func WriteCSV(w io.Writer, res model.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"hour", "device_ids", "power_w"}); err != nil {
		return err
	}
	for h := 0; h < model.HoursPerDay; h++ {
		var ids []string
		if h < len(res.Schedule) {
			ids = res.Schedule[h]
		}
		rec := []string{
			strconv.Itoa(h),
			strings.Join(ids, ";"),
			strconv.FormatFloat(res.Load[h], 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Notice returns the message shown to the user for a rejected device.
func Notice(o model.Outcome) string {
	name := o.Name
	if name == "" {
		name = o.DeviceID
	}
	switch o.Reason {
	case model.ReasonExceedsMaxPower:
		return fmt.Sprintf("The declared power of device %q exceeds the maximum. It will not be scheduled.", name)
	case model.ReasonUnpricedHour:
		return fmt.Sprintf("Device %q cannot be scheduled: the tariff does not price all of its hours.", name)
	default:
		return fmt.Sprintf("Device %q cannot be scheduled!", name)
	}
}

// WriteNotices writes one line per rejected device.
func WriteNotices(w io.Writer, outcomes []model.Outcome) error {
	for _, o := range outcomes {
		if o.Placed {
			continue
		}
		if _, err := fmt.Fprintln(w, Notice(o)); err != nil {
			return err
		}
	}
	return nil
}
