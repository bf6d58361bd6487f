// Package schedule implements the reminder date rules: deriving the
// next KGB/Pangkat due date from a historical TMT date, and
// normalizing the lookahead window used by the reminder listings.
package schedule

import "github.com/marewang/final-bnn/types"

// Cycle lengths in years for the two personnel actions.
const (
	KGBOffsetYears     = 2
	PangkatOffsetYears = 4
)

// DefaultWindowMonths is the lookahead applied when a request names no
// window, or an unusable one.
const DefaultWindowMonths = 3

// allowedWindows are the only lookahead spans the storage layer will
// ever see. Keeping this a fixed whitelist means no request-controlled
// interval expression reaches SQL.
var allowedWindows = []int{1, 3, 6}

// NextDue derives a due date from a historical date plus a year
// offset. A nil historical date yields nil: an absent due date is a
// valid record state, not an error.
//
// Year arithmetic is calendar-correct: Feb 29 plus an offset landing
// in a non-leap year normalizes to Mar 1 of the target year.
func NextDue(historical *types.Date, offsetYears int) *types.Date {
	if historical == nil || historical.IsZero() {
		return nil
	}
	due := types.Date{Time: historical.AddDate(offsetYears, 0, 0)}
	return &due
}

// NormalizeWindow coerces a requested lookahead to the permitted set
// {1, 3, 6}. Zero or negative requests fall back to the default;
// anything else snaps to the nearest permitted value, favoring the
// default on ties. Requests are never rejected, matching the forgiving
// behavior of the original tool.
func NormalizeWindow(months int) int {
	if months <= 0 {
		return DefaultWindowMonths
	}

	best := DefaultWindowMonths
	bestDist := -1
	for _, w := range allowedWindows {
		dist := months - w
		if dist < 0 {
			dist = -dist
		}
		switch {
		case bestDist < 0 || dist < bestDist:
			best, bestDist = w, dist
		case dist == bestDist && w == DefaultWindowMonths:
			best = w
		}
	}
	return best
}
