// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared test helpers: an in-memory SQLite
// database with the full schema, seed helpers for hackathons, projects,
// judges and votes, and HTTP request/assertion utilities.
package testutil
