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

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

type voteStatusResponse struct {
	Eligibility    status.Decision `json:"eligibility"`
	HasVoted       bool            `json:"has_voted"`
	VotedProjectID string          `json:"voted_project_id,omitempty"`
	VotedProject   string          `json:"voted_project,omitempty"`
}

// Status handles GET /api/projects/:id/vote-status
// Reports whether the user may vote on this project and which project
// in the hackathon, if any, already holds their vote.
func (h *VotingHandler) Status(w http.ResponseWriter, r *http.Request) {
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

	resp := voteStatusResponse{
		Eligibility: status.CanVoteOnProject(hackathon, user.Email, project),
	}

	votedID, votedName, found, err := getUserVoteInHackathon(h.db, project.HackathonID, user.Email)
	if err != nil {
		slog.Error("failed to query existing vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if found {
		resp.HasVoted = true
		resp.VotedProjectID = votedID
		resp.VotedProject = votedName
		if resp.Eligibility.Allowed {
			resp.Eligibility = status.Decision{Allowed: false, Reason: models.ReasonAlreadyVoted}
		}
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Cast handles POST /api/projects/:id/vote
// One popular vote per user per hackathon. A second vote is rejected
// with the name of the project already holding it.
func (h *VotingHandler) Cast(w http.ResponseWriter, r *http.Request) {
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

	if d := status.CanVoteOnProject(hackathon, user.Email, project); !d.Allowed {
		middleware.DenyResponse(w, http.StatusForbidden, d.Reason, "You cannot vote on this project")
		return
	}

	votedID, votedName, found, err := getUserVoteInHackathon(h.db, project.HackathonID, user.Email)
	if err != nil {
		slog.Error("failed to query existing vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if found {
		msg := "You already voted for " + votedName + " in this hackathon"
		if votedID == id {
			msg = "You already voted for this project"
		}
		middleware.DenyResponse(w, http.StatusConflict, models.ReasonAlreadyVoted, msg)
		return
	}

	voteID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate vote ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO popular_votes (id, project_id, user_email, created_at)
		VALUES ($1, $2, $3, $4)
	`, voteID, id, user.Email, time.Now())
	if err != nil {
		slog.Error("failed to insert vote", "error", err, "project_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	slog.Info("popular vote cast", "project_id", id, "hackathon_id", project.HackathonID)

	count, err := getPopularVoteCount(h.db, id)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, map[string]int{"vote_count": count})
}

// Remove handles DELETE /api/projects/:id/vote
// Retracting follows the same gate as casting: closed once the
// hackathon is concluded, unless popular voting was kept open.
func (h *VotingHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	if hackathon.ConcludedAt != nil && !hackathon.KeepPopularVoteOpen {
		middleware.DenyResponse(w, http.StatusForbidden, models.ReasonHackathonConcluded, "Voting is closed")
		return
	}

	res, err := h.db.Exec(`
		DELETE FROM popular_votes WHERE project_id = $1 AND LOWER(user_email) = LOWER($2)
	`, id, user.Email)
	if err != nil {
		slog.Error("failed to delete vote", "error", err, "project_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove vote")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "No vote to remove")
		return
	}

	slog.Info("popular vote removed", "project_id", id)

	count, err := getPopularVoteCount(h.db, id)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]int{"vote_count": count})
}
