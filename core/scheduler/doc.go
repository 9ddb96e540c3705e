// Package scheduler places household appliances on a 24 hour grid.
//
// Devices are handled one at a time in descending power order. For each
// device every contiguous window of its allowed hours is priced against the
// tariff and the cheapest window that keeps every hour under the power
// ceiling is committed. Placements are never revisited, so the result is a
// greedy plan rather than an optimal one.
package scheduler
