// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the database schema.

# Usage

	if err := db.CreateSchema(dbConn); err != nil {
		// handle
	}

# Portability

The schema runs unchanged on SQLite (modernc.org/sqlite, the default)
and PostgreSQL (lib/pq): all ids are TEXT generated app-side, flag
columns are BOOLEAN bound from Go bools, timestamps are passed
explicitly, and the judge_category_votes upsert uses the ON CONFLICT
clause both engines support.

# Cascades

Deleting a hackathon cascades to its projects, judge codes, and
categories; deleting a project cascades to its votes, comments, and
judge category votes. SQLite needs PRAGMA foreign_keys = ON, which
main() sets for sqlite connections.
*/
package db
