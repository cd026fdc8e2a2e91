// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ebronson/hackboard/auth"
	"github.com/ebronson/hackboard/cliparse"
	"github.com/ebronson/hackboard/db"
	"github.com/ebronson/hackboard/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each call gets its own database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// A single connection keeps the in-memory database alive and
	// visible across queries.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:                 3100,
		DatabaseURL:          ":memory:",
		DatabaseType:         "sqlite",
		BaseURL:              "http://localhost:3100",
		AppBasePath:          "/",
		IdentityURL:          "http://localhost:4444",
		SuperAdmin:           "super@example.edu",
		JudgeCodeExpiryHours: 168,
	}
}

// CreateTestHackathon inserts a hackathon with the given boundaries and
// returns its ID.
func CreateTestHackathon(t *testing.T, conn *sql.DB, start, end time.Time, voteExp, reviewEnds *time.Time) string {
	t.Helper()

	id, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO hackathons (id, name, description, start_time, end_time,
			vote_expiration, review_ends_at, archived, keep_popular_vote_open,
			created_by, created_at)
		VALUES ($1, 'Test Hackathon', 'A test hackathon', $2, $3, $4, $5,
			FALSE, FALSE, 'admin@example.edu', $6)
	`, id, start, end, voteExp, reviewEnds, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test hackathon: %v", err)
	}

	return id
}

// ConcludeTestHackathon marks a hackathon concluded.
func ConcludeTestHackathon(t *testing.T, conn *sql.DB, hackathonID string) {
	t.Helper()

	_, err := conn.Exec(`
		UPDATE hackathons SET concluded_at = $1, concluded_by = 'admin@example.edu' WHERE id = $2
	`, time.Now(), hackathonID)
	if err != nil {
		t.Fatalf("Failed to conclude test hackathon: %v", err)
	}
}

// CreateTestProject inserts a project with the given team and returns
// its ID.
func CreateTestProject(t *testing.T, conn *sql.DB, hackathonID, name string, teamEmails []string) string {
	t.Helper()

	id, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO projects (id, hackathon_id, name, description, github_link,
			team_emails, deadline_override_enabled, created_by, created_at)
		VALUES ($1, $2, $3, '', '', $4, FALSE, 'admin@example.edu', $5)
	`, id, hackathonID, name, models.TeamEmails(teamEmails), time.Now())
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}

	return id
}

// CreateTestJudgeCode inserts a judge code and returns its ID and code.
func CreateTestJudgeCode(t *testing.T, conn *sql.DB, hackathonID, judgeName string, expiresAt time.Time) (id, code string) {
	t.Helper()

	id, _ = auth.GenerateID(16)
	code, _ = auth.GenerateJudgeCode()
	_, err := conn.Exec(`
		INSERT INTO judge_codes (id, hackathon_id, code, judge_name, created_by,
			expires_at, revoked, voted, anonymous_responses, created_at)
		VALUES ($1, $2, $3, $4, 'admin@example.edu', $5, FALSE, FALSE, FALSE, $6)
	`, id, hackathonID, code, judgeName, expiresAt, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test judge code: %v", err)
	}

	return id, code
}

// CreateTestCategory inserts a judge category and returns its ID.
func CreateTestCategory(t *testing.T, conn *sql.DB, hackathonID, name string, weight float64, order int) string {
	t.Helper()

	id, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO judge_categories (id, hackathon_id, name, description, weight, display_order, created_at)
		VALUES ($1, $2, $3, '', $4, $5, $6)
	`, id, hackathonID, name, weight, order, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return id
}

// CastTestVote inserts a popular vote.
func CastTestVote(t *testing.T, conn *sql.DB, projectID, userEmail string) {
	t.Helper()

	id, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO popular_votes (id, project_id, user_email, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, projectID, userEmail, time.Now())
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// ScoreTestProject inserts one judge category vote.
func ScoreTestProject(t *testing.T, conn *sql.DB, judgeCodeID, projectID, categoryID string, score int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO judge_category_votes (judge_code_id, project_id, category_id, score, voted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, judgeCodeID, projectID, categoryID, score, time.Now())
	if err != nil {
		t.Fatalf("Failed to score test project: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
