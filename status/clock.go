// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package status

import (
	"fmt"
	"time"
)

// All lifecycle comparisons happen in US Eastern wall-clock time, no
// matter what zone an instant was recorded in. Day-boundary semantics
// are the same for every observer; this is policy, not formatting.
var eastern *time.Location

func init() {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// Tzdata missing is an environment defect the engine cannot
		// paper over with a silent UTC fallback.
		panic(fmt.Sprintf("status: cannot load America/New_York: %v", err))
	}
	eastern = loc
}

// InEastern converts an instant to its US Eastern representation.
func InEastern(t time.Time) time.Time {
	return t.In(eastern)
}

// ParseInstant parses a stored or submitted instant. Malformed input is
// an input-contract violation surfaced to the caller, never defaulted.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed instant %q: %w", s, err)
	}
	return InEastern(t), nil
}
