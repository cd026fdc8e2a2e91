// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package middleware provides HTTP middleware and response helpers:
// request logging with correlation ids, JSON encoding, CORS, client IP
// extraction, and the RequireUser/RequireAdmin authentication wrappers.
package middleware
