// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The SQL is kept
// portable across SQLite and PostgreSQL: TEXT ids generated app-side,
// BOOLEAN flags, explicit timestamps.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Admin whitelist
CREATE TABLE IF NOT EXISTS admins (
    email TEXT PRIMARY KEY,
    added_by TEXT NOT NULL,
    added_at TIMESTAMP NOT NULL
);

-- Audit trail of admin actions
CREATE TABLE IF NOT EXISTS audit_logs (
    id TEXT PRIMARY KEY,
    actor_email TEXT NOT NULL,
    action_type TEXT NOT NULL,
    target_entity TEXT NOT NULL,
    details_json TEXT,
    created_at TIMESTAMP NOT NULL
);

-- Hackathons
CREATE TABLE IF NOT EXISTS hackathons (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP NOT NULL,
    vote_expiration TIMESTAMP,
    review_ends_at TIMESTAMP,
    concluded_at TIMESTAMP,
    concluded_by TEXT,
    archived BOOLEAN NOT NULL DEFAULT FALSE,
    keep_popular_vote_open BOOLEAN NOT NULL DEFAULT FALSE,
    created_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_hackathons_start_time ON hackathons(start_time);

-- Projects (team_emails is a JSON array column)
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    hackathon_id TEXT NOT NULL REFERENCES hackathons(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    description TEXT,
    github_link TEXT,
    team_emails TEXT NOT NULL,
    deadline_override_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    deadline_override_by TEXT,
    deadline_override_at TIMESTAMP,
    created_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_hackathon_id ON projects(hackathon_id);

-- Popular votes (uniqueness per project; the one-vote-per-hackathon
-- rule is enforced at the eligibility layer)
CREATE TABLE IF NOT EXISTS popular_votes (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    user_email TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (project_id, user_email)
);

CREATE INDEX IF NOT EXISTS idx_popular_votes_project_id ON popular_votes(project_id);
CREATE INDEX IF NOT EXISTS idx_popular_votes_user_email ON popular_votes(user_email);

-- Judge codes: one code = one judge identity = at most one submission
CREATE TABLE IF NOT EXISTS judge_codes (
    id TEXT PRIMARY KEY,
    hackathon_id TEXT NOT NULL REFERENCES hackathons(id) ON DELETE CASCADE,
    code TEXT NOT NULL UNIQUE,
    judge_name TEXT NOT NULL,
    created_by TEXT NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    revoked BOOLEAN NOT NULL DEFAULT FALSE,
    voted BOOLEAN NOT NULL DEFAULT FALSE,
    voted_at TIMESTAMP,
    anonymous_responses BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_judge_codes_hackathon_id ON judge_codes(hackathon_id);
CREATE INDEX IF NOT EXISTS idx_judge_codes_code ON judge_codes(code);

-- Weighted rubric categories
CREATE TABLE IF NOT EXISTS judge_categories (
    id TEXT PRIMARY KEY,
    hackathon_id TEXT NOT NULL REFERENCES hackathons(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    description TEXT,
    weight REAL NOT NULL DEFAULT 1.0 CHECK (weight > 0),
    display_order INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_judge_categories_hackathon_id ON judge_categories(hackathon_id);

-- Per-category judge scores; resubmission before the code is marked
-- voted overwrites in place
CREATE TABLE IF NOT EXISTS judge_category_votes (
    judge_code_id TEXT NOT NULL REFERENCES judge_codes(id) ON DELETE CASCADE,
    project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    category_id TEXT NOT NULL REFERENCES judge_categories(id) ON DELETE CASCADE,
    score INTEGER NOT NULL CHECK (score >= 1 AND score <= 10),
    comment TEXT,
    voted_at TIMESTAMP NOT NULL,
    PRIMARY KEY (judge_code_id, project_id, category_id)
);

CREATE INDEX IF NOT EXISTS idx_judge_category_votes_project_id ON judge_category_votes(project_id);
CREATE INDEX IF NOT EXISTS idx_judge_category_votes_category_id ON judge_category_votes(category_id);

-- Comments (soft-deleted)
CREATE TABLE IF NOT EXISTS comments (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    user_email TEXT NOT NULL,
    display_name TEXT NOT NULL,
    content TEXT NOT NULL,
    deleted BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_project_id ON comments(project_id);
`
