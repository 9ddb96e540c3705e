package model

import "testing"

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":        ModeAny,
		"any":     ModeAny,
		"Night":   ModeNight,
		" day ":   ModeDay,
		"evening": Mode("evening"),
	}
	for in, want := range cases {
		if got := ParseMode(in); got != want {
			t.Fatalf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
	if ModeAny.String() != "any" {
		t.Fatalf("unexpected any mode name %q", ModeAny.String())
	}
}

func TestDeviceValidate(t *testing.T) {
	valid := Device{ID: "oven", Power: 2000, Duration: 2}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	invalid := []Device{
		{Power: 1, Duration: 1},
		{ID: "a", Power: 0, Duration: 1},
		{ID: "a", Power: 1, Duration: 0},
		{ID: "a", Power: 1, Duration: 25},
	}
	for _, d := range invalid {
		if err := d.Validate(); err == nil {
			t.Fatalf("expected error for %+v", d)
		}
	}
}

func TestResultRejected(t *testing.T) {
	r := Result{Outcomes: []Outcome{
		{DeviceID: "a", Placed: true, Hours: []int{1}},
		{DeviceID: "b", Reason: ReasonNoFeasibleSlot},
	}}
	if rej := r.Rejected(); len(rej) != 1 || rej[0].DeviceID != "b" {
		t.Fatalf("unexpected rejected %+v", rej)
	}
	if h := r.HoursOf("a"); len(h) != 1 || h[0] != 1 {
		t.Fatalf("unexpected hours %v", h)
	}
	if r.HoursOf("b") != nil {
		t.Fatalf("rejected device should have no hours")
	}
	if (Device{ID: "x"}).Label() != "x" {
		t.Fatalf("label fallback")
	}
}
