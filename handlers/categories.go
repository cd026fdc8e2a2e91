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
)

type CategoryHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCategoryHandler(db *sql.DB, cfg cliparse.Config) *CategoryHandler {
	return &CategoryHandler{db: db, cfg: cfg}
}

// List handles GET /api/hackathons/:id/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	categories, err := getJudgeCategories(h.db, id)
	if err != nil {
		slog.Error("failed to query categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, categories)
}

// Create handles POST /api/hackathons/:id/categories (admin only)
// New categories take the next display order slot.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreateCategoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	weight := 1.0
	if req.Weight != nil {
		if *req.Weight <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "weight must be positive")
			return
		}
		weight = *req.Weight
	}

	var maxOrder sql.NullInt64
	err := h.db.QueryRow(`
		SELECT MAX(display_order) FROM judge_categories WHERE hackathon_id = $1
	`, hackathonID).Scan(&maxOrder)
	if err != nil {
		slog.Error("failed to query display order", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	order := 0
	if maxOrder.Valid {
		order = int(maxOrder.Int64) + 1
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate category ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	category := models.JudgeCategory{
		ID:           id,
		HackathonID:  hackathonID,
		Name:         req.Name,
		Description:  req.Description,
		Weight:       weight,
		DisplayOrder: order,
		CreatedAt:    time.Now(),
	}

	_, err = h.db.Exec(`
		INSERT INTO judge_categories (id, hackathon_id, name, description, weight, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, category.ID, category.HackathonID, category.Name, category.Description,
		category.Weight, category.DisplayOrder, category.CreatedAt)
	if err != nil {
		slog.Error("failed to insert category", "error", err, "hackathon_id", hackathonID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	logAudit(h.db, user.Email, "category_created", id, map[string]string{"name": req.Name})
	slog.Info("category created", "category_id", id, "hackathon_id", hackathonID)

	middleware.JSONResponse(w, http.StatusCreated, category)
}

// Update handles PUT /api/categories/:id (admin only)
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var c models.JudgeCategory
	err := h.db.QueryRow(`
		SELECT id, hackathon_id, name, description, weight, display_order, created_at
		FROM judge_categories WHERE id = $1
	`, id).Scan(&c.ID, &c.HackathonID, &c.Name, &c.Description, &c.Weight, &c.DisplayOrder, &c.CreatedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		slog.Error("failed to query category", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.UpdateCategoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Weight != nil {
		if *req.Weight <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "weight must be positive")
			return
		}
		c.Weight = *req.Weight
	}
	if req.DisplayOrder != nil {
		c.DisplayOrder = *req.DisplayOrder
	}

	_, err = h.db.Exec(`
		UPDATE judge_categories SET name = $1, description = $2, weight = $3, display_order = $4
		WHERE id = $5
	`, c.Name, c.Description, c.Weight, c.DisplayOrder, id)
	if err != nil {
		slog.Error("failed to update category", "error", err, "category_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	logAudit(h.db, user.Email, "category_updated", id, nil)
	slog.Info("category updated", "category_id", id)

	middleware.JSONResponse(w, http.StatusOK, c)
}

// Delete handles DELETE /api/categories/:id (admin only)
// Cascades to that category's judge votes.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	res, err := h.db.Exec(`DELETE FROM judge_categories WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete category", "error", err, "category_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Category not found")
		return
	}

	logAudit(h.db, user.Email, "category_deleted", id, nil)
	slog.Info("category deleted", "category_id", id)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

// Reorder handles POST /api/hackathons/:id/categories/reorder (admin only)
// The request lists every category id in the desired display order.
func (h *CategoryHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	hackathonID := r.PathValue("id")

	var req models.ReorderCategoriesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.CategoryIDs) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category_ids cannot be empty")
		return
	}

	categories, err := getJudgeCategories(h.db, hackathonID)
	if err != nil {
		slog.Error("failed to query categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	existing := make(map[string]bool, len(categories))
	for _, c := range categories {
		existing[c.ID] = true
	}
	if len(req.CategoryIDs) != len(categories) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category_ids must list every category exactly once")
		return
	}
	seen := make(map[string]bool, len(req.CategoryIDs))
	for _, id := range req.CategoryIDs {
		if !existing[id] || seen[id] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "category_ids must list every category exactly once")
			return
		}
		seen[id] = true
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for i, id := range req.CategoryIDs {
		_, err = tx.Exec(`UPDATE judge_categories SET display_order = $1 WHERE id = $2`, i, id)
		if err != nil {
			slog.Error("failed to reorder category", "error", err, "category_id", id)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reorder categories")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reorder categories")
		return
	}

	logAudit(h.db, user.Email, "categories_reordered", hackathonID, nil)
	slog.Info("categories reordered", "hackathon_id", hackathonID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Categories reordered"})
}
