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

type ProjectHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewProjectHandler(db *sql.DB, cfg cliparse.Config) *ProjectHandler {
	return &ProjectHandler{db: db, cfg: cfg}
}

// Get handles GET /api/projects/:id
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	project, err := getProject(h.db, id)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	project.VoteCount, err = getPopularVoteCount(h.db, id)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM comments WHERE project_id = $1 AND deleted = FALSE
	`, id).Scan(&project.CommentCount)
	if err != nil {
		slog.Error("failed to count comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, project)
}

// Create handles POST /api/hackathons/:id/projects (admin only)
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	hackathonID := r.PathValue("id")

	if _, err := getHackathon(h.db, hackathonID); err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Hackathon not found")
		return
	} else if err != nil {
		slog.Error("failed to query hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.CreateProjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	emails, err := models.ParseTeamEmails(req.TeamEmails, h.cfg.EmailDomain)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate project ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO projects (id, hackathon_id, name, description, github_link,
			team_emails, deadline_override_enabled, created_by, created_at)
		VALUES ($1, $2, $3, '', '', $4, FALSE, $5, $6)
	`, id, hackathonID, req.Name, emails, user.Email, time.Now())
	if err != nil {
		slog.Error("failed to insert project", "error", err, "hackathon_id", hackathonID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	logAudit(h.db, user.Email, "project_created", id, map[string]string{"name": req.Name})
	slog.Info("project created", "project_id", id, "hackathon_id", hackathonID, "created_by", user.Email)

	project, err := getProject(h.db, id)
	if err != nil {
		slog.Error("failed to reload project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, project)
}

// Update handles PUT /api/projects/:id
// Admins may always edit. Team members may edit while the hackathon is
// active, or any time their project's deadline override is on.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	project, err := getProject(h.db, id)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	hackathon, err := getHackathon(h.db, project.HackathonID)
	if err != nil {
		slog.Error("failed to query hackathon", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	isAdmin := auth.IsAdmin(h.db, user, h.cfg.SuperAdmin)
	if !status.CanEditProject(project, hackathon, user.Email, isAdmin, time.Now()) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Project editing is closed")
		return
	}

	var req models.UpdateProjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.GithubLink != nil {
		project.GithubLink = *req.GithubLink
	}

	_, err = h.db.Exec(`
		UPDATE projects SET name = $1, description = $2, github_link = $3 WHERE id = $4
	`, project.Name, project.Description, project.GithubLink, id)
	if err != nil {
		slog.Error("failed to update project", "error", err, "project_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update project")
		return
	}

	slog.Info("project updated", "project_id", id, "updated_by", user.Email)
	middleware.JSONResponse(w, http.StatusOK, project)
}

// ToggleDeadlineOverride handles POST /api/projects/:id/deadline-override
// (admin only). Flips the per-project escape hatch that lets a team keep
// editing after the submission deadline.
func (h *ProjectHandler) ToggleDeadlineOverride(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	project, err := getProject(h.db, id)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	enabled := !project.DeadlineOverrideEnabled
	now := time.Now()
	_, err = h.db.Exec(`
		UPDATE projects
		SET deadline_override_enabled = $1, deadline_override_by = $2, deadline_override_at = $3
		WHERE id = $4
	`, enabled, user.Email, now, id)
	if err != nil {
		slog.Error("failed to toggle deadline override", "error", err, "project_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update project")
		return
	}

	logAudit(h.db, user.Email, "deadline_override_toggled", id, map[string]bool{"enabled": enabled})
	slog.Info("deadline override toggled", "project_id", id, "enabled", enabled, "by", user.Email)

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"deadline_override_enabled": enabled})
}

// Delete handles DELETE /api/projects/:id (admin only)
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	res, err := h.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete project", "error", err, "project_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}

	logAudit(h.db, user.Email, "project_deleted", id, nil)
	slog.Info("project deleted", "project_id", id, "deleted_by", user.Email)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Project deleted"})
}
