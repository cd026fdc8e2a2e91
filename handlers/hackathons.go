// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/ebronson/hackboard/auth"
	"github.com/ebronson/hackboard/cliparse"
	"github.com/ebronson/hackboard/middleware"
	"github.com/ebronson/hackboard/models"
	"github.com/ebronson/hackboard/status"
)

// defaultCategories are auto-created with every hackathon so judging
// works out of the box. Admins can edit or replace them afterwards.
var defaultCategories = []string{
	"Innovation/Creativity",
	"Functionality",
	"Design/Polish",
	"Presentation/Demo",
}

type HackathonHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewHackathonHandler(db *sql.DB, cfg cliparse.Config) *HackathonHandler {
	return &HackathonHandler{db: db, cfg: cfg}
}

// hackathonView is a hackathon record merged with its derived lifecycle
// state, the shape every read endpoint returns.
type hackathonView struct {
	models.Hackathon
	status.Status
}

func viewOf(h models.Hackathon, now time.Time) hackathonView {
	return hackathonView{Hackathon: h, Status: status.Compute(h, now)}
}

// List handles GET /api/hackathons
func (h *HackathonHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT ` + hackathonColumns + ` FROM hackathons ORDER BY start_time DESC
	`)
	if err != nil {
		slog.Error("failed to query hackathons", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	now := time.Now()
	views := []hackathonView{}
	for rows.Next() {
		hackathon, err := scanHackathon(rows)
		if err != nil {
			slog.Error("failed to scan hackathon", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		views = append(views, viewOf(hackathon, now))
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}

// Current handles GET /api/hackathons/current
// Picks the active hackathon; failing that the next upcoming one;
// failing that the most recently ended.
func (h *HackathonHandler) Current(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT ` + hackathonColumns + ` FROM hackathons
		WHERE archived = FALSE
		ORDER BY start_time ASC
	`)
	if err != nil {
		slog.Error("failed to query hackathons", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	now := time.Now()
	var upcoming, latest *hackathonView
	for rows.Next() {
		hackathon, err := scanHackathon(rows)
		if err != nil {
			slog.Error("failed to scan hackathon", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		v := viewOf(hackathon, now)
		switch v.Status.Status {
		case models.StatusActive:
			middleware.JSONResponse(w, http.StatusOK, v)
			return
		case models.StatusUpcoming:
			if upcoming == nil {
				upcoming = &v
			}
		default:
			latest = &v
		}
	}

	if upcoming != nil {
		middleware.JSONResponse(w, http.StatusOK, upcoming)
		return
	}
	if latest != nil {
		middleware.JSONResponse(w, http.StatusOK, latest)
		return
	}
	middleware.ErrorResponse(w, http.StatusNotFound, "No hackathons found")
}

// Get handles GET /api/hackathons/:id
// Returns the hackathon with its status and its projects with vote and
// comment counts.
func (h *HackathonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	hackathon, err := getHackathon(h.db, id)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hackathon not found")
		return
	}
	if err != nil {
		slog.Error("failed to query hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT `+projectColumns+`,
			(SELECT COUNT(*) FROM popular_votes v WHERE v.project_id = projects.id),
			(SELECT COUNT(*) FROM comments c WHERE c.project_id = projects.id AND c.deleted = FALSE)
		FROM projects
		WHERE hackathon_id = $1
		ORDER BY created_at
	`, id)
	if err != nil {
		slog.Error("failed to query projects", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID, &p.HackathonID, &p.Name, &p.Description, &p.GithubLink,
			&p.TeamEmails, &p.DeadlineOverrideEnabled, &p.DeadlineOverrideBy,
			&p.DeadlineOverrideAt, &p.CreatedBy, &p.CreatedAt,
			&p.VoteCount, &p.CommentCount,
		); err != nil {
			slog.Error("failed to scan project", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		projects = append(projects, p)
	}

	middleware.JSONResponse(w, http.StatusOK, struct {
		hackathonView
		Projects []models.Project `json:"projects"`
	}{viewOf(hackathon, time.Now()), projects})
}

// validateSchedule enforces the boundary ordering invariant:
// start < end < vote_expiration, and vote_expiration < review_ends_at
// when a review period is configured. The default vote expiration
// (end + 7 days) participates when none is set explicitly.
func validateSchedule(start, end time.Time, voteExp, reviewEnds *time.Time) string {
	if !start.Before(end) {
		return "start_time must be before end_time"
	}
	effectiveExp := end.Add(models.DefaultVoteWindow)
	if voteExp != nil {
		if !end.Before(*voteExp) {
			return "vote_expiration must be after end_time"
		}
		effectiveExp = *voteExp
	}
	if reviewEnds != nil && !effectiveExp.Before(*reviewEnds) {
		return "review_ends_at must be after vote_expiration"
	}
	return ""
}

func parseOptionalInstant(s *string) (*time.Time, string) {
	if s == nil || *s == "" {
		return nil, ""
	}
	t, err := status.ParseInstant(*s)
	if err != nil {
		return nil, err.Error()
	}
	return &t, ""
}

// Create handles POST /api/hackathons (admin only)
func (h *HackathonHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.CreateHackathonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	start, err := status.ParseInstant(req.StartTime)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := status.ParseInstant(req.EndTime)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	voteExp, msg := parseOptionalInstant(req.VoteExpiration)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	reviewEnds, msg := parseOptionalInstant(req.ReviewEndsAt)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	if msg := validateSchedule(start, end, voteExp, reviewEnds); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate hackathon ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create hackathon")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.Exec(`
		INSERT INTO hackathons (id, name, description, start_time, end_time,
			vote_expiration, review_ends_at, archived, keep_popular_vote_open,
			created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, FALSE, $8, $9)
	`, id, req.Name, req.Description, start, end, voteExp, reviewEnds, user.Email, now)
	if err != nil {
		slog.Error("failed to insert hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create hackathon")
		return
	}

	for i, name := range defaultCategories {
		catID, err := auth.GenerateID(16)
		if err != nil {
			slog.Error("failed to generate category ID", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create hackathon")
			return
		}
		_, err = tx.Exec(`
			INSERT INTO judge_categories (id, hackathon_id, name, description, weight, display_order, created_at)
			VALUES ($1, $2, $3, '', 1.0, $4, $5)
		`, catID, id, name, i, now)
		if err != nil {
			slog.Error("failed to insert default category", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create hackathon")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create hackathon")
		return
	}

	logAudit(h.db, user.Email, "hackathon_created", id, map[string]string{"name": req.Name})
	slog.Info("hackathon created", "hackathon_id", id, "name", req.Name, "created_by", user.Email)

	hackathon, err := getHackathon(h.db, id)
	if err != nil {
		slog.Error("failed to reload hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, viewOf(hackathon, time.Now()))
}

// Update handles PUT /api/hackathons/:id (admin only)
func (h *HackathonHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	hackathon, err := getHackathon(h.db, id)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hackathon not found")
		return
	}
	if err != nil {
		slog.Error("failed to query hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.UpdateHackathonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != nil {
		hackathon.Name = *req.Name
	}
	if req.Description != nil {
		hackathon.Description = *req.Description
	}
	if req.StartTime != nil {
		t, err := status.ParseInstant(*req.StartTime)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		hackathon.StartTime = t
	}
	if req.EndTime != nil {
		t, err := status.ParseInstant(*req.EndTime)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		hackathon.EndTime = t
	}
	if req.VoteExpiration != nil {
		t, msg := parseOptionalInstant(req.VoteExpiration)
		if msg != "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, msg)
			return
		}
		hackathon.VoteExpiration = t
	}
	if req.ReviewEndsAt != nil {
		t, msg := parseOptionalInstant(req.ReviewEndsAt)
		if msg != "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, msg)
			return
		}
		hackathon.ReviewEndsAt = t
	}
	if req.KeepPopularVoteOpen != nil {
		hackathon.KeepPopularVoteOpen = *req.KeepPopularVoteOpen
	}

	if msg := validateSchedule(hackathon.StartTime, hackathon.EndTime,
		hackathon.VoteExpiration, hackathon.ReviewEndsAt); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	_, err = h.db.Exec(`
		UPDATE hackathons
		SET name = $1, description = $2, start_time = $3, end_time = $4,
			vote_expiration = $5, review_ends_at = $6, keep_popular_vote_open = $7
		WHERE id = $8
	`, hackathon.Name, hackathon.Description, hackathon.StartTime, hackathon.EndTime,
		hackathon.VoteExpiration, hackathon.ReviewEndsAt, hackathon.KeepPopularVoteOpen, id)
	if err != nil {
		slog.Error("failed to update hackathon", "error", err, "hackathon_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update hackathon")
		return
	}

	logAudit(h.db, user.Email, "hackathon_updated", id, nil)
	slog.Info("hackathon updated", "hackathon_id", id, "updated_by", user.Email)

	middleware.JSONResponse(w, http.StatusOK, viewOf(hackathon, time.Now()))
}

// Conclude handles POST /api/hackathons/:id/conclude (admin only)
// Concluding freezes voting (unless keep_popular_vote_open) and forces
// results visible.
func (h *HackathonHandler) Conclude(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	hackathon, err := getHackathon(h.db, id)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hackathon not found")
		return
	}
	if err != nil {
		slog.Error("failed to query hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if hackathon.ConcludedAt != nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Hackathon is already concluded")
		return
	}

	now := time.Now()
	_, err = h.db.Exec(`
		UPDATE hackathons SET concluded_at = $1, concluded_by = $2 WHERE id = $3
	`, now, user.Email, id)
	if err != nil {
		slog.Error("failed to conclude hackathon", "error", err, "hackathon_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to conclude hackathon")
		return
	}

	hackathon.ConcludedAt = &now
	hackathon.ConcludedBy = &user.Email

	logAudit(h.db, user.Email, "hackathon_concluded", id, nil)
	slog.Info("hackathon concluded", "hackathon_id", id, "concluded_by", user.Email)

	middleware.JSONResponse(w, http.StatusOK, viewOf(hackathon, now))
}

// Archive handles POST /api/hackathons/:id/archive (admin only)
func (h *HackathonHandler) Archive(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	res, err := h.db.Exec(`UPDATE hackathons SET archived = TRUE WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to archive hackathon", "error", err, "hackathon_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to archive hackathon")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hackathon not found")
		return
	}

	logAudit(h.db, user.Email, "hackathon_archived", id, nil)
	slog.Info("hackathon archived", "hackathon_id", id, "archived_by", user.Email)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Hackathon archived"})
}

// Delete handles DELETE /api/hackathons/:id (admin only)
// Cascades to projects, votes, codes, categories, and comments.
func (h *HackathonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	res, err := h.db.Exec(`DELETE FROM hackathons WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete hackathon", "error", err, "hackathon_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete hackathon")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hackathon not found")
		return
	}

	logAudit(h.db, user.Email, "hackathon_deleted", id, nil)
	slog.Info("hackathon deleted", "hackathon_id", id, "deleted_by", user.Email)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Hackathon deleted"})
}
