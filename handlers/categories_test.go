// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ebronson/hackboard/models"
	"github.com/ebronson/hackboard/testutil"
)

func TestCreateCategory_TakesNextOrder(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewCategoryHandler(conn, testutil.GetTestConfig())

	start, end := activeHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)
	testutil.CreateTestCategory(t, conn, hackathonID, "Technical", 1.0, 0)
	testutil.CreateTestCategory(t, conn, hackathonID, "Design", 1.0, 1)

	req := testutil.MakeRequest("POST", "/api/hackathons/"+hackathonID+"/categories",
		models.CreateCategoryRequest{Name: "Presentation"}, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()
	h.Create(w, asUser(req, "admin@example.edu"))

	testutil.AssertStatus(t, w, http.StatusCreated)

	var c models.JudgeCategory
	testutil.AssertJSON(t, w, &c)
	if c.DisplayOrder != 2 {
		t.Errorf("display_order = %d, want 2 (max + 1)", c.DisplayOrder)
	}
	if c.Weight != 1.0 {
		t.Errorf("weight = %v, want default 1.0", c.Weight)
	}
}

func TestCreateCategory_RejectsBadWeight(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewCategoryHandler(conn, testutil.GetTestConfig())

	start, end := activeHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)

	zero := 0.0
	req := testutil.MakeRequest("POST", "/api/hackathons/"+hackathonID+"/categories",
		models.CreateCategoryRequest{Name: "Broken", Weight: &zero}, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()
	h.Create(w, asUser(req, "admin@example.edu"))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestReorderCategories(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewCategoryHandler(conn, testutil.GetTestConfig())

	start, end := activeHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)
	c1 := testutil.CreateTestCategory(t, conn, hackathonID, "Technical", 1.0, 0)
	c2 := testutil.CreateTestCategory(t, conn, hackathonID, "Design", 1.0, 1)
	c3 := testutil.CreateTestCategory(t, conn, hackathonID, "Demo", 1.0, 2)

	req := testutil.MakeRequest("POST", "/api/hackathons/"+hackathonID+"/categories/reorder",
		models.ReorderCategoriesRequest{CategoryIDs: []string{c3, c1, c2}}, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()
	h.Reorder(w, asUser(req, "admin@example.edu"))

	testutil.AssertStatus(t, w, http.StatusOK)

	categories, err := getJudgeCategories(conn, hackathonID)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{c3, c1, c2}
	for i, c := range categories {
		if c.ID != want[i] {
			t.Errorf("position %d = %s, want %s", i, c.ID, want[i])
		}
	}
}

func TestReorderCategories_MustListAll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewCategoryHandler(conn, testutil.GetTestConfig())

	start, end := activeHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)
	c1 := testutil.CreateTestCategory(t, conn, hackathonID, "Technical", 1.0, 0)
	testutil.CreateTestCategory(t, conn, hackathonID, "Design", 1.0, 1)

	req := testutil.MakeRequest("POST", "/api/hackathons/"+hackathonID+"/categories/reorder",
		models.ReorderCategoriesRequest{CategoryIDs: []string{c1}}, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()
	h.Reorder(w, asUser(req, "admin@example.edu"))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
