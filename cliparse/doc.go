// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cliparse handles command-line flag parsing and environment
// variable fallbacks for server configuration.
package cliparse
