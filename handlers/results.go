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
	"github.com/ebronson/hackboard/scoring"
	"github.com/ebronson/hackboard/status"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// projectScore is one judge's score in one category, as shown in the
// detailed results. Judges who opted for anonymous responses appear as
// "Anonymous".
type projectScore struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Score        int     `json:"score"`
	Comment      *string `json:"comment,omitempty"`
	JudgeName    string  `json:"judge_name"`
}

// projectDetail groups one project's individual judge scores in the
// detailed results section.
type projectDetail struct {
	ProjectID   string         `json:"project_id"`
	ProjectName string         `json:"project_name"`
	Scores      []projectScore `json:"scores"`
}

// loadDetailedScores pulls every judge vote across the hackathon,
// grouped by project. Judges who opted for anonymous responses are
// masked unless the caller is an admin.
func (h *ResultsHandler) loadDetailedScores(hackathonID string, isAdmin bool) ([]projectDetail, error) {
	rows, err := h.db.Query(`
		SELECT p.id, p.name, v.category_id, c.name, v.score, v.comment,
			j.judge_name, j.anonymous_responses
		FROM judge_category_votes v
		JOIN projects p ON p.id = v.project_id
		JOIN judge_categories c ON c.id = v.category_id
		JOIN judge_codes j ON j.id = v.judge_code_id
		WHERE p.hackathon_id = $1
		ORDER BY p.created_at, c.display_order, j.judge_name
	`, hackathonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detailed := []projectDetail{}
	index := make(map[string]int)
	for rows.Next() {
		var projectID, projectName string
		var s projectScore
		var anonymous bool
		if err := rows.Scan(&projectID, &projectName, &s.CategoryID, &s.CategoryName,
			&s.Score, &s.Comment, &s.JudgeName, &anonymous); err != nil {
			return nil, err
		}
		if anonymous && !isAdmin {
			s.JudgeName = "Anonymous"
		}
		i, ok := index[projectID]
		if !ok {
			i = len(detailed)
			index[projectID] = i
			detailed = append(detailed, projectDetail{ProjectID: projectID, ProjectName: projectName})
		}
		detailed[i].Scores = append(detailed[i].Scores, s)
	}
	return detailed, rows.Err()
}

// Hackathon handles GET /api/hackathons/:id/results
// Results are hidden until the hackathon's lifecycle makes them public;
// admins can always preview.
func (h *ResultsHandler) Hackathon(w http.ResponseWriter, r *http.Request) {
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

	now := time.Now()
	st := status.Compute(hackathon, now)
	isAdmin := auth.IsAdmin(h.db, user, h.cfg.SuperAdmin)
	if !st.ResultsVisible && !isAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are not yet available")
		return
	}

	categories, err := getJudgeCategories(h.db, id)
	if err != nil {
		slog.Error("failed to query categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	weights := make(map[string]float64, len(categories))
	for _, c := range categories {
		weights[c.ID] = c.Weight
	}

	votes, err := getCategoryVotes(h.db, id)
	if err != nil {
		slog.Error("failed to query judge votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT p.id, p.name,
			(SELECT COUNT(*) FROM popular_votes v WHERE v.project_id = p.id)
		FROM projects p
		WHERE p.hackathon_id = $1
	`, id)
	if err != nil {
		slog.Error("failed to query projects", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	summaries := []scoring.ProjectSummary{}
	projectNames := make(map[string]string)
	for rows.Next() {
		var projectID, name string
		var popular int
		if err := rows.Scan(&projectID, &name, &popular); err != nil {
			slog.Error("failed to scan project", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		projectNames[projectID] = name
		summaries = append(summaries, scoring.Summarize(projectID, name, popular, votes, weights))
	}
	scoring.SortSummaries(summaries)

	detailed, err := h.loadDetailedScores(id, isAdmin)
	if err != nil {
		slog.Error("failed to query detailed scores", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"hackathon":        viewOf(hackathon, now),
		"summary":          summaries,
		"detailed":         detailed,
		"category_winners": scoring.CategoryWinners(categories, votes, projectNames),
		"overall":          scoring.OverallWinner(summaries),
		"preview":          !st.ResultsVisible,
	})
}

// ProjectScores handles GET /api/projects/:id/scores
// Per-project judge scores with statistics, under the same visibility
// gate as hackathon results.
func (h *ResultsHandler) ProjectScores(w http.ResponseWriter, r *http.Request) {
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

	st := status.Compute(hackathon, time.Now())
	isAdmin := auth.IsAdmin(h.db, user, h.cfg.SuperAdmin)
	if !st.ResultsVisible && !isAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are not yet available")
		return
	}

	rows, err := h.db.Query(`
		SELECT v.judge_code_id, v.category_id, c.name, v.score, v.comment,
			j.judge_name, j.anonymous_responses
		FROM judge_category_votes v
		JOIN judge_categories c ON c.id = v.category_id
		JOIN judge_codes j ON j.id = v.judge_code_id
		WHERE v.project_id = $1
		ORDER BY c.display_order, j.judge_name
	`, id)
	if err != nil {
		slog.Error("failed to query project scores", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	scores := []projectScore{}
	votes := []scoring.Vote{}
	for rows.Next() {
		var s projectScore
		var judgeCodeID string
		var anonymous bool
		if err := rows.Scan(&judgeCodeID, &s.CategoryID, &s.CategoryName, &s.Score, &s.Comment,
			&s.JudgeName, &anonymous); err != nil {
			slog.Error("failed to scan score", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if anonymous && !isAdmin {
			s.JudgeName = "Anonymous"
		}
		scores = append(scores, s)
		votes = append(votes, scoring.Vote{
			JudgeCodeID: judgeCodeID,
			ProjectID:   id,
			CategoryID:  s.CategoryID,
			Score:       s.Score,
		})
	}

	categories, err := getJudgeCategories(h.db, project.HackathonID)
	if err != nil {
		slog.Error("failed to query categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	weights := make(map[string]float64, len(categories))
	for _, c := range categories {
		weights[c.ID] = c.Weight
	}

	popular, err := getPopularVoteCount(h.db, id)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"project_id":   id,
		"project_name": project.Name,
		"scores":       scores,
		"statistics":   scoring.Summarize(id, project.Name, popular, votes, weights),
	})
}
