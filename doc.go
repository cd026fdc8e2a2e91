// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Hackboard API server.

Hackboard runs university hackathons: scheduling, project submissions,
popular voting, weighted judge scoring with invite codes, results, and
comments. A hackathon's lifecycle state (upcoming, active, ended,
vote_expired, review-period, concluded, archived) is never stored; it is
derived on every request from the stored boundaries and the current US
Eastern time.

# Starting the Server

The server reads configuration from the environment (a .env file is
honored) or CLI flags:

	IDENTITY_URL=http://localhost:4444 go run main.go

Or with flags:

	go run main.go -p 3100 -t sqlite -d "file:hackboard.db"

# Configuration

Required settings:

  - IDENTITY_URL: Base URL of the token-check identity service

Optional settings:

  - PORT (-p): Server port (default: 3100)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): Connection string (default: file:hackboard.db)
  - BASE_URL, APP_BASE_PATH: Used to build judge invite links
  - SUPER_ADMIN_EMAIL: Always-admin account
  - EMAIL_DOMAIN: Restrict team emails to one domain
  - JUDGE_CODE_EXPIRY_HOURS: Judge code lifetime (default: 168)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (hackathons, projects, voting,
    judging, results, comments, admin)
  - status: lifecycle calculator and eligibility rules (pure)
  - scoring: weighted score aggregation and winner sets (pure)
  - router: Route definitions using Go 1.22+ routing
  - middleware: auth wrappers, CORS, logging, JSON helpers
  - models: Domain and request/response types
  - auth: judge codes, identity verification, admin determination
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
