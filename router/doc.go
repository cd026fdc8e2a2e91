// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router wires HTTP routes to handlers using Go 1.22 method
// patterns, applying logging and authentication middleware per route.
package router
