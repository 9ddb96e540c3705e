package model

// HoursPerDay is the number of scheduling slots in a plan.
const HoursPerDay = 24

// Rate is a tariff period. From is inclusive and To exclusive; a rate with
// From > To wraps past midnight.
type Rate struct {
	From  int     `json:"from" yaml:"from"`
	To    int     `json:"to" yaml:"to"`
	Value float64 `json:"value" yaml:"value"` // price per kWh
}

// Wraps reports whether the period crosses midnight.
func (r Rate) Wraps() bool { return r.From > r.To }
