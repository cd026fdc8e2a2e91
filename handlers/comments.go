// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ebronson/hackboard/auth"
	"github.com/ebronson/hackboard/cliparse"
	"github.com/ebronson/hackboard/middleware"
	"github.com/ebronson/hackboard/models"
)

type CommentHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCommentHandler(db *sql.DB, cfg cliparse.Config) *CommentHandler {
	return &CommentHandler{db: db, cfg: cfg}
}

// List handles GET /api/projects/:id/comments
// Soft-deleted comments never appear.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rows, err := h.db.Query(`
		SELECT id, project_id, user_email, display_name, content, created_at, updated_at
		FROM comments
		WHERE project_id = $1 AND deleted = FALSE
		ORDER BY created_at
	`, id)
	if err != nil {
		slog.Error("failed to query comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.UserEmail, &c.DisplayName,
			&c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			slog.Error("failed to scan comment", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		comments = append(comments, c)
	}

	middleware.JSONResponse(w, http.StatusOK, comments)
}

// Add handles POST /api/projects/:id/comments
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	if _, err := getProject(h.db, id); err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	} else if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.AddCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content is required")
		return
	}
	if len(content) > 2000 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content must be at most 2000 characters")
		return
	}

	commentID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate comment ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	now := time.Now()
	comment := models.Comment{
		ID:          commentID,
		ProjectID:   id,
		UserEmail:   user.Email,
		DisplayName: user.DisplayName(),
		Content:     content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = h.db.Exec(`
		INSERT INTO comments (id, project_id, user_email, display_name, content, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)
	`, comment.ID, comment.ProjectID, comment.UserEmail, comment.DisplayName,
		comment.Content, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		slog.Error("failed to insert comment", "error", err, "project_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	slog.Info("comment added", "comment_id", commentID, "project_id", id)
	middleware.JSONResponse(w, http.StatusCreated, comment)
}

// loadOwnComment fetches a live comment and checks it belongs to the
// user and is still inside the edit window. Writes the error response
// and returns ok=false on any failure.
func (h *CommentHandler) loadOwnComment(w http.ResponseWriter, id, userEmail string, skipWindow bool) (models.Comment, bool) {
	var c models.Comment
	err := h.db.QueryRow(`
		SELECT id, project_id, user_email, display_name, content, created_at, updated_at
		FROM comments
		WHERE id = $1 AND deleted = FALSE
	`, id).Scan(&c.ID, &c.ProjectID, &c.UserEmail, &c.DisplayName,
		&c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Comment not found")
		return models.Comment{}, false
	}
	if err != nil {
		slog.Error("failed to query comment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Comment{}, false
	}

	if skipWindow {
		return c, true
	}

	if !strings.EqualFold(c.UserEmail, userEmail) {
		middleware.ErrorResponse(w, http.StatusForbidden, "You can only change your own comments")
		return models.Comment{}, false
	}
	if time.Since(c.CreatedAt) > models.CommentEditWindow {
		middleware.ErrorResponse(w, http.StatusForbidden,
			"Comments can only be changed within 15 minutes; this one was posted "+humanize.Time(c.CreatedAt))
		return models.Comment{}, false
	}
	return c, true
}

// Edit handles PUT /api/comments/:id
// Author only, within the 15-minute window.
func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	comment, ok := h.loadOwnComment(w, id, user.Email, false)
	if !ok {
		return
	}

	var req models.AddCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content is required")
		return
	}

	now := time.Now()
	_, err := h.db.Exec(`
		UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3
	`, content, now, id)
	if err != nil {
		slog.Error("failed to update comment", "error", err, "comment_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update comment")
		return
	}

	comment.Content = content
	comment.UpdatedAt = now
	slog.Info("comment edited", "comment_id", id)
	middleware.JSONResponse(w, http.StatusOK, comment)
}

// Delete handles DELETE /api/comments/:id
// Soft delete: the row stays for moderation but never renders again.
// Admins may remove any comment at any time; authors only their own,
// within the window.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	isAdmin := auth.IsAdmin(h.db, user, h.cfg.SuperAdmin)
	if _, ok := h.loadOwnComment(w, id, user.Email, isAdmin); !ok {
		return
	}

	_, err := h.db.Exec(`
		UPDATE comments SET deleted = TRUE, updated_at = $1 WHERE id = $2
	`, time.Now(), id)
	if err != nil {
		slog.Error("failed to delete comment", "error", err, "comment_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}

	if isAdmin {
		logAudit(h.db, user.Email, "comment_deleted", id, nil)
	}
	slog.Info("comment deleted", "comment_id", id, "by", user.Email)
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}
