// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/ebronson/hackboard/auth"
	"github.com/ebronson/hackboard/cliparse"
	"github.com/ebronson/hackboard/handlers"
	"github.com/ebronson/hackboard/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, verifier *auth.Verifier) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	hackathonHandler := handlers.NewHackathonHandler(db, cfg)
	projectHandler := handlers.NewProjectHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	judgingHandler := handlers.NewJudgingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	commentHandler := handlers.NewCommentHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireUser(verifier, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(verifier, db, cfg.SuperAdmin, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session
	mux.HandleFunc("GET /api/me", user(adminHandler.Me))

	// Hackathons
	mux.HandleFunc("GET /api/hackathons", user(hackathonHandler.List))
	mux.HandleFunc("GET /api/hackathons/current", user(hackathonHandler.Current))
	mux.HandleFunc("GET /api/hackathons/{id}", user(hackathonHandler.Get))
	mux.HandleFunc("POST /api/hackathons", admin(hackathonHandler.Create))
	mux.HandleFunc("PUT /api/hackathons/{id}", admin(hackathonHandler.Update))
	mux.HandleFunc("POST /api/hackathons/{id}/conclude", admin(hackathonHandler.Conclude))
	mux.HandleFunc("POST /api/hackathons/{id}/archive", admin(hackathonHandler.Archive))
	mux.HandleFunc("DELETE /api/hackathons/{id}", admin(hackathonHandler.Delete))

	// Projects
	mux.HandleFunc("GET /api/projects/{id}", user(projectHandler.Get))
	mux.HandleFunc("POST /api/hackathons/{id}/projects", admin(projectHandler.Create))
	mux.HandleFunc("PUT /api/projects/{id}", user(projectHandler.Update))
	mux.HandleFunc("POST /api/projects/{id}/deadline-override", admin(projectHandler.ToggleDeadlineOverride))
	mux.HandleFunc("DELETE /api/projects/{id}", admin(projectHandler.Delete))

	// Popular voting
	mux.HandleFunc("GET /api/projects/{id}/vote-status", user(votingHandler.Status))
	mux.HandleFunc("POST /api/projects/{id}/vote", user(votingHandler.Cast))
	mux.HandleFunc("DELETE /api/projects/{id}/vote", user(votingHandler.Remove))

	// Judging (code-authenticated, no session required)
	mux.HandleFunc("GET /api/hackathons/{id}/judge", middleware.WithLogging(judgingHandler.Portal))
	mux.HandleFunc("POST /api/hackathons/{id}/judge-votes", middleware.WithLogging(judgingHandler.Submit))

	// Results
	mux.HandleFunc("GET /api/hackathons/{id}/results", user(resultsHandler.Hackathon))
	mux.HandleFunc("GET /api/projects/{id}/scores", user(resultsHandler.ProjectScores))

	// Comments
	mux.HandleFunc("GET /api/projects/{id}/comments", user(commentHandler.List))
	mux.HandleFunc("POST /api/projects/{id}/comments", user(commentHandler.Add))
	mux.HandleFunc("PUT /api/comments/{id}", user(commentHandler.Edit))
	mux.HandleFunc("DELETE /api/comments/{id}", user(commentHandler.Delete))

	// Judge categories
	mux.HandleFunc("GET /api/hackathons/{id}/categories", user(categoryHandler.List))
	mux.HandleFunc("POST /api/hackathons/{id}/categories", admin(categoryHandler.Create))
	mux.HandleFunc("PUT /api/categories/{id}", admin(categoryHandler.Update))
	mux.HandleFunc("DELETE /api/categories/{id}", admin(categoryHandler.Delete))
	mux.HandleFunc("POST /api/hackathons/{id}/categories/reorder", admin(categoryHandler.Reorder))

	// Judge codes (admin)
	mux.HandleFunc("GET /api/hackathons/{id}/judges", admin(adminHandler.ListJudges))
	mux.HandleFunc("POST /api/hackathons/{id}/judges", admin(adminHandler.CreateJudge))
	mux.HandleFunc("PUT /api/judges/{id}", admin(adminHandler.UpdateJudge))
	mux.HandleFunc("POST /api/judges/{id}/revoke", admin(adminHandler.RevokeJudge))

	// Admin management
	mux.HandleFunc("GET /api/admin/dashboard", admin(adminHandler.Dashboard))
	mux.HandleFunc("GET /api/admin/settings", admin(adminHandler.Settings))
	mux.HandleFunc("GET /api/admins", admin(adminHandler.ListAdmins))
	mux.HandleFunc("POST /api/admins", admin(adminHandler.AddAdmin))
	mux.HandleFunc("DELETE /api/admins/{email}", admin(adminHandler.RemoveAdmin))
	mux.HandleFunc("GET /api/audit-logs", admin(adminHandler.AuditLog))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hackboard API v1"))
	})

	return mux
}
