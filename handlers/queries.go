// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/ebronson/hackboard/auth"
	"github.com/ebronson/hackboard/middleware"
	"github.com/ebronson/hackboard/models"
	"github.com/ebronson/hackboard/scoring"
)

const hackathonColumns = `id, name, description, start_time, end_time,
	vote_expiration, review_ends_at, concluded_at, concluded_by,
	archived, keep_popular_vote_open, created_by, created_at`

const projectColumns = `id, hackathon_id, name, description, github_link,
	team_emails, deadline_override_enabled, deadline_override_by,
	deadline_override_at, created_by, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHackathon(row rowScanner) (models.Hackathon, error) {
	var h models.Hackathon
	err := row.Scan(
		&h.ID, &h.Name, &h.Description, &h.StartTime, &h.EndTime,
		&h.VoteExpiration, &h.ReviewEndsAt, &h.ConcludedAt, &h.ConcludedBy,
		&h.Archived, &h.KeepPopularVoteOpen, &h.CreatedBy, &h.CreatedAt,
	)
	return h, err
}

func scanProject(row rowScanner) (models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.HackathonID, &p.Name, &p.Description, &p.GithubLink,
		&p.TeamEmails, &p.DeadlineOverrideEnabled, &p.DeadlineOverrideBy,
		&p.DeadlineOverrideAt, &p.CreatedBy, &p.CreatedAt,
	)
	return p, err
}

func getHackathon(db *sql.DB, id string) (models.Hackathon, error) {
	row := db.QueryRow(`SELECT `+hackathonColumns+` FROM hackathons WHERE id = $1`, id)
	return scanHackathon(row)
}

func getProject(db *sql.DB, id string) (models.Project, error) {
	row := db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func getJudgeCategories(db *sql.DB, hackathonID string) ([]models.JudgeCategory, error) {
	rows, err := db.Query(`
		SELECT id, hackathon_id, name, description, weight, display_order, created_at
		FROM judge_categories
		WHERE hackathon_id = $1
		ORDER BY display_order, created_at
	`, hackathonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.JudgeCategory{}
	for rows.Next() {
		var c models.JudgeCategory
		if err := rows.Scan(&c.ID, &c.HackathonID, &c.Name, &c.Description,
			&c.Weight, &c.DisplayOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func getJudgeCodeByCode(db *sql.DB, code string) (models.JudgeCode, error) {
	var jc models.JudgeCode
	err := db.QueryRow(`
		SELECT id, hackathon_id, code, judge_name, created_by, expires_at,
			revoked, voted, voted_at, anonymous_responses, created_at
		FROM judge_codes WHERE code = $1
	`, code).Scan(
		&jc.ID, &jc.HackathonID, &jc.Code, &jc.JudgeName, &jc.CreatedBy,
		&jc.ExpiresAt, &jc.Revoked, &jc.Voted, &jc.VotedAt,
		&jc.AnonymousResponses, &jc.CreatedAt,
	)
	return jc, err
}

// getUserVoteInHackathon finds the project the user has already cast a
// popular vote for within the hackathon, if any.
func getUserVoteInHackathon(db *sql.DB, hackathonID, email string) (projectID, projectName string, found bool, err error) {
	err = db.QueryRow(`
		SELECT p.id, p.name
		FROM popular_votes v
		JOIN projects p ON p.id = v.project_id
		WHERE p.hackathon_id = $1 AND LOWER(v.user_email) = LOWER($2)
	`, hackathonID, email).Scan(&projectID, &projectName)
	if err == sql.ErrNoRows {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	return projectID, projectName, true, nil
}

// getCategoryVotes loads every judge category vote across a hackathon's
// projects, the raw input to the scoring aggregator.
func getCategoryVotes(db *sql.DB, hackathonID string) ([]scoring.Vote, error) {
	rows, err := db.Query(`
		SELECT v.judge_code_id, v.project_id, v.category_id, v.score
		FROM judge_category_votes v
		JOIN projects p ON p.id = v.project_id
		WHERE p.hackathon_id = $1
	`, hackathonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []scoring.Vote{}
	for rows.Next() {
		var v scoring.Vote
		if err := rows.Scan(&v.JudgeCodeID, &v.ProjectID, &v.CategoryID, &v.Score); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

func getPopularVoteCount(db *sql.DB, projectID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM popular_votes WHERE project_id = $1
	`, projectID).Scan(&count)
	return count, err
}

// requireUser pulls the verified identity from the request context.
// Returns ok=false after writing the error response when the request
// somehow bypassed the authentication middleware.
func requireUser(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := middleware.UserFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return auth.Identity{}, false
	}
	return id, true
}
