// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers contains the HTTP handlers for the hackathon portal:
// hackathon and project CRUD, popular voting, judge score submission,
// results aggregation, comments, and admin management. Handlers run
// their own SQL and delegate all lifecycle and scoring decisions to the
// status and scoring packages.
package handlers
