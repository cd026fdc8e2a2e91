// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/ebronson/hackboard/auth"
	"github.com/ebronson/hackboard/middleware"
)

// asUser attaches a verified identity to a test request, standing in
// for the authentication middleware.
func asUser(r *http.Request, email string) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), auth.Identity{
		Active:     true,
		Email:      email,
		GivenName:  "Test",
		FamilyName: "User",
	}))
}

// endedHackathonTimes returns boundaries for a hackathon whose
// submissions closed yesterday but whose vote window is still open.
func endedHackathonTimes() (start, end time.Time) {
	now := time.Now()
	return now.Add(-72 * time.Hour), now.Add(-24 * time.Hour)
}

// activeHackathonTimes returns boundaries spanning the present moment.
func activeHackathonTimes() (start, end time.Time) {
	now := time.Now()
	return now.Add(-time.Hour), now.Add(24 * time.Hour)
}
