// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/ebronson/hackboard/cliparse"
	"github.com/ebronson/hackboard/middleware"
	"github.com/ebronson/hackboard/models"
	"github.com/ebronson/hackboard/status"
)

type JudgingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewJudgingHandler(db *sql.DB, cfg cliparse.Config) *JudgingHandler {
	return &JudgingHandler{db: db, cfg: cfg}
}

// denyStatus maps an eligibility reason to its HTTP status: code-state
// problems are conflicts, timing problems are permission denials.
func denyStatus(reason string) int {
	switch reason {
	case models.ReasonCodeRevoked, models.ReasonCodeExpired, models.ReasonCodeAlreadyUsed:
		return http.StatusConflict
	default:
		return http.StatusForbidden
	}
}

// Portal handles GET /api/hackathons/:id/judge?code=...
// Validates the judge code and returns everything the judging UI needs:
// the hackathon, its rubric categories, and its projects.
func (h *JudgingHandler) Portal(w http.ResponseWriter, r *http.Request) {
	hackathonID := r.PathValue("id")
	code := r.URL.Query().Get("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	judgeCode, err := getJudgeCodeByCode(h.db, code)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Invalid judge code")
		return
	}
	if err != nil {
		slog.Error("failed to query judge code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	hackathon, err := getHackathon(h.db, hackathonID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hackathon not found")
		return
	}
	if err != nil {
		slog.Error("failed to query hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	if d := status.CheckJudgeCode(judgeCode, hackathonID, hackathon, now); !d.Allowed {
		if d.Reason == models.ReasonCodeAlreadyUsed {
			// The judge already submitted; tell the UI so instead of
			// presenting a blank ballot.
			middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
				"voted":      true,
				"judge_name": judgeCode.JudgeName,
				"voted_at":   judgeCode.VotedAt,
			})
			return
		}
		middleware.DenyResponse(w, denyStatus(d.Reason), d.Reason, "Judge code cannot be used")
		return
	}

	categories, err := getJudgeCategories(h.db, hackathonID)
	if err != nil {
		slog.Error("failed to query categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, name, description, github_link FROM projects
		WHERE hackathon_id = $1 ORDER BY created_at
	`, hackathonID)
	if err != nil {
		slog.Error("failed to query projects", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	type judgeProject struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		GithubLink  string `json:"github_link"`
	}
	projects := []judgeProject{}
	for rows.Next() {
		var p judgeProject
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.GithubLink); err != nil {
			slog.Error("failed to scan project", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		projects = append(projects, p)
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"voted":      false,
		"judge_name": judgeCode.JudgeName,
		"hackathon":  viewOf(hackathon, now),
		"categories": categories,
		"projects":   projects,
	})
}

// Submit handles POST /api/hackathons/:id/judge-votes
// The whole batch is validated before any write, then persisted in a
// single transaction that also marks the code used. A partial write can
// never survive: either every score lands and the code is consumed, or
// nothing changes.
func (h *JudgingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	hackathonID := r.PathValue("id")

	var req models.SubmitJudgeVotesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}
	if len(req.Votes) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "votes cannot be empty")
		return
	}

	judgeCode, err := getJudgeCodeByCode(h.db, req.Code)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Invalid judge code")
		return
	}
	if err != nil {
		slog.Error("failed to query judge code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	hackathon, err := getHackathon(h.db, hackathonID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hackathon not found")
		return
	}
	if err != nil {
		slog.Error("failed to query hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	if d := status.CheckJudgeCode(judgeCode, hackathonID, hackathon, now); !d.Allowed {
		middleware.DenyResponse(w, denyStatus(d.Reason), d.Reason, "Judge code cannot be used")
		return
	}

	categories, err := getJudgeCategories(h.db, hackathonID)
	if err != nil {
		slog.Error("failed to query categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	validCategories := make(map[string]bool, len(categories))
	for _, c := range categories {
		validCategories[c.ID] = true
	}

	projectRows, err := h.db.Query(`SELECT id FROM projects WHERE hackathon_id = $1`, hackathonID)
	if err != nil {
		slog.Error("failed to query projects", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer projectRows.Close()
	validProjects := make(map[string]bool)
	for projectRows.Next() {
		var pid string
		if err := projectRows.Scan(&pid); err != nil {
			slog.Error("failed to scan project", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		validProjects[pid] = true
	}

	// Resolve and validate the entire batch before touching the
	// database. A single bad score rejects the whole submission.
	type resolvedVote struct {
		projectID  string
		categoryID string
		score      int
		comment    *string
	}
	resolved := []resolvedVote{}
	for projectID, pv := range req.Votes {
		if !validProjects[projectID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown project: "+projectID)
			return
		}
		entries, err := pv.Resolve(categories)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Project "+projectID+": "+err.Error())
			return
		}
		for categoryID, entry := range entries {
			if !validCategories[categoryID] {
				middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown category: "+categoryID)
				return
			}
			if entry.Score < 1 || entry.Score > 10 {
				middleware.ErrorResponse(w, http.StatusBadRequest, "Scores must be between 1 and 10")
				return
			}
			resolved = append(resolved, resolvedVote{
				projectID:  projectID,
				categoryID: categoryID,
				score:      entry.Score,
				comment:    entry.Comment,
			})
		}
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, v := range resolved {
		_, err = tx.Exec(`
			INSERT INTO judge_category_votes (judge_code_id, project_id, category_id, score, comment, voted_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (judge_code_id, project_id, category_id)
			DO UPDATE SET score = EXCLUDED.score, comment = EXCLUDED.comment, voted_at = EXCLUDED.voted_at
		`, judgeCode.ID, v.projectID, v.categoryID, v.score, v.comment, now)
		if err != nil {
			slog.Error("failed to upsert judge vote", "error", err,
				"project_id", v.projectID, "category_id", v.categoryID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save scores")
			return
		}
	}

	_, err = tx.Exec(`
		UPDATE judge_codes SET voted = TRUE, voted_at = $1 WHERE id = $2
	`, now, judgeCode.ID)
	if err != nil {
		slog.Error("failed to mark judge code used", "error", err, "judge_code_id", judgeCode.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save scores")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save scores")
		return
	}

	slog.Info("judge votes submitted", "hackathon_id", hackathonID,
		"judge_code_id", judgeCode.ID, "projects", len(req.Votes), "scores", len(resolved))

	middleware.JSONResponse(w, http.StatusCreated, map[string]interface{}{
		"message":         "Scores submitted successfully",
		"projects_scored": len(req.Votes),
	})
}
