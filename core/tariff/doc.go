// Package tariff expands time-of-day rate periods into an hourly price table.
//
// Expansion is permissive: overlapping periods resolve last-write-wins and
// hours not covered by any period stay unpriced. Validate reports both
// conditions for callers that want to reject such tariffs upfront.
package tariff
