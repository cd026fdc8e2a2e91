// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ebronson/hackboard/auth"
	"github.com/ebronson/hackboard/cliparse"
	"github.com/ebronson/hackboard/middleware"
	"github.com/ebronson/hackboard/models"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// Dashboard handles GET /api/admin/dashboard
// One fetch for the admin landing page: all hackathons with status, the
// admin whitelist, and the recent audit trail.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
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
	hackathons := []hackathonView{}
	for rows.Next() {
		hackathon, err := scanHackathon(rows)
		if err != nil {
			slog.Error("failed to scan hackathon", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		hackathons = append(hackathons, viewOf(hackathon, now))
	}

	admins, err := h.listAdmins()
	if err != nil {
		slog.Error("failed to query admins", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	audit, err := h.recentAudit(50)
	if err != nil {
		slog.Error("failed to query audit log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"hackathons": hackathons,
		"admins":     admins,
		"audit_log":  audit,
	})
}

func (h *AdminHandler) listAdmins() ([]models.Admin, error) {
	rows, err := h.db.Query(`SELECT email, added_by, added_at FROM admins ORDER BY added_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []models.Admin{}
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.Email, &a.AddedBy, &a.AddedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func (h *AdminHandler) recentAudit(limit int) ([]models.AuditEntry, error) {
	rows, err := h.db.Query(`
		SELECT id, actor_email, action_type, target_entity, details_json, created_at
		FROM audit_logs ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		var details sql.NullString
		if err := rows.Scan(&e.ID, &e.ActorEmail, &e.ActionType, &e.TargetEntity,
			&details, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Details = details.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListAdmins handles GET /api/admins
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.listAdmins()
	if err != nil {
		slog.Error("failed to query admins", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, admins)
}

// AddAdmin handles POST /api/admins
func (h *AdminHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.AddAdminRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO admins (email, added_by, added_at) VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
	`, email, user.Email, time.Now())
	if err != nil {
		slog.Error("failed to insert admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add admin")
		return
	}

	logAudit(h.db, user.Email, "admin_added", email, nil)
	slog.Info("admin added", "email", email, "added_by", user.Email)

	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"email": email})
}

// RemoveAdmin handles DELETE /api/admins/:email
// The super admin cannot be removed, and admins cannot remove
// themselves.
func (h *AdminHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	email := strings.ToLower(r.PathValue("email"))

	if h.cfg.SuperAdmin != "" && email == strings.ToLower(h.cfg.SuperAdmin) {
		middleware.ErrorResponse(w, http.StatusForbidden, "The super admin cannot be removed")
		return
	}
	if strings.EqualFold(email, user.Email) {
		middleware.ErrorResponse(w, http.StatusForbidden, "You cannot remove yourself")
		return
	}

	res, err := h.db.Exec(`DELETE FROM admins WHERE email = $1`, email)
	if err != nil {
		slog.Error("failed to delete admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove admin")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Admin not found")
		return
	}

	logAudit(h.db, user.Email, "admin_removed", email, nil)
	slog.Info("admin removed", "email", email, "removed_by", user.Email)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Admin removed"})
}

// Settings handles GET /api/admin/settings
// Exposes the non-secret deployment configuration the admin UI displays.
func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"super_admin_email":       h.cfg.SuperAdmin,
		"email_domain":            h.cfg.EmailDomain,
		"judge_code_expiry_hours": h.cfg.JudgeCodeExpiryHours,
		"base_url":                h.cfg.BaseURL,
	})
}

// AuditLog handles GET /api/audit-logs
func (h *AdminHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.recentAudit(200)
	if err != nil {
		slog.Error("failed to query audit log", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, entries)
}

// judgeView is a judge code listing entry. The invite link carries the
// raw code and is only ever shown to admins here.
type judgeView struct {
	models.JudgeCode
	Link string `json:"link"`
}

// ListJudges handles GET /api/hackathons/:id/judges
func (h *AdminHandler) ListJudges(w http.ResponseWriter, r *http.Request) {
	hackathonID := r.PathValue("id")

	rows, err := h.db.Query(`
		SELECT id, hackathon_id, code, judge_name, created_by, expires_at,
			revoked, voted, voted_at, anonymous_responses, created_at
		FROM judge_codes WHERE hackathon_id = $1 ORDER BY created_at
	`, hackathonID)
	if err != nil {
		slog.Error("failed to query judge codes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	judges := []judgeView{}
	for rows.Next() {
		var jc models.JudgeCode
		if err := rows.Scan(&jc.ID, &jc.HackathonID, &jc.Code, &jc.JudgeName,
			&jc.CreatedBy, &jc.ExpiresAt, &jc.Revoked, &jc.Voted, &jc.VotedAt,
			&jc.AnonymousResponses, &jc.CreatedAt); err != nil {
			slog.Error("failed to scan judge code", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		judges = append(judges, judgeView{
			JudgeCode: jc,
			Link:      auth.JudgeLink(h.cfg.BaseURL, h.cfg.AppBasePath, hackathonID, jc.Code),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, judges)
}

// CreateJudge handles POST /api/hackathons/:id/judges
func (h *AdminHandler) CreateJudge(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreateJudgeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.JudgeName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "judge_name is required")
		return
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate judge ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create judge")
		return
	}
	code, err := auth.GenerateJudgeCode()
	if err != nil {
		slog.Error("failed to generate judge code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create judge")
		return
	}

	now := time.Now()
	jc := models.JudgeCode{
		ID:                 id,
		HackathonID:        hackathonID,
		Code:               code,
		JudgeName:          req.JudgeName,
		CreatedBy:          user.Email,
		ExpiresAt:          now.Add(time.Duration(h.cfg.JudgeCodeExpiryHours) * time.Hour),
		AnonymousResponses: req.AnonymousResponses,
		CreatedAt:          now,
	}

	_, err = h.db.Exec(`
		INSERT INTO judge_codes (id, hackathon_id, code, judge_name, created_by,
			expires_at, revoked, voted, anonymous_responses, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, FALSE, $7, $8)
	`, jc.ID, jc.HackathonID, jc.Code, jc.JudgeName, jc.CreatedBy,
		jc.ExpiresAt, jc.AnonymousResponses, jc.CreatedAt)
	if err != nil {
		slog.Error("failed to insert judge code", "error", err, "hackathon_id", hackathonID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create judge")
		return
	}

	logAudit(h.db, user.Email, "judge_created", id, map[string]string{"judge_name": req.JudgeName})
	slog.Info("judge code created", "judge_code_id", id, "hackathon_id", hackathonID)

	middleware.JSONResponse(w, http.StatusCreated, judgeView{
		JudgeCode: jc,
		Link:      auth.JudgeLink(h.cfg.BaseURL, h.cfg.AppBasePath, hackathonID, code),
	})
}

// UpdateJudge handles PUT /api/judges/:id
func (h *AdminHandler) UpdateJudge(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var name string
	var anonymous bool
	err := h.db.QueryRow(`
		SELECT judge_name, anonymous_responses FROM judge_codes WHERE id = $1
	`, id).Scan(&name, &anonymous)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Judge not found")
		return
	}
	if err != nil {
		slog.Error("failed to query judge code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.UpdateJudgeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.JudgeName != nil {
		if *req.JudgeName == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "judge_name cannot be empty")
			return
		}
		name = *req.JudgeName
	}
	if req.AnonymousResponses != nil {
		anonymous = *req.AnonymousResponses
	}

	_, err = h.db.Exec(`
		UPDATE judge_codes SET judge_name = $1, anonymous_responses = $2 WHERE id = $3
	`, name, anonymous, id)
	if err != nil {
		slog.Error("failed to update judge code", "error", err, "judge_code_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update judge")
		return
	}

	logAudit(h.db, user.Email, "judge_updated", id, nil)
	slog.Info("judge code updated", "judge_code_id", id)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Judge updated"})
}

// RevokeJudge handles POST /api/judges/:id/revoke
// Revocation invalidates the code immediately; submitted scores stay.
func (h *AdminHandler) RevokeJudge(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	res, err := h.db.Exec(`UPDATE judge_codes SET revoked = TRUE WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to revoke judge code", "error", err, "judge_code_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to revoke judge")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Judge not found")
		return
	}

	logAudit(h.db, user.Email, "judge_revoked", id, nil)
	slog.Info("judge code revoked", "judge_code_id", id, "revoked_by", user.Email)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Judge revoked"})
}

// Me handles GET /api/me
// Echoes the verified identity plus the admin determination so the
// frontend can shape its UI.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"email":        user.Email,
		"display_name": user.DisplayName(),
		"roles":        user.Roles,
		"is_admin":     auth.IsAdmin(h.db, user, h.cfg.SuperAdmin),
	})
}
