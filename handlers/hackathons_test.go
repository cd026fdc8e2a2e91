// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ebronson/hackboard/models"
	"github.com/ebronson/hackboard/testutil"
)

func TestCreateHackathon_Success(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewHackathonHandler(conn, testutil.GetTestConfig())

	body := models.CreateHackathonRequest{
		Name:      "Spring Hackathon",
		StartTime: "2026-03-06T17:00:00-05:00",
		EndTime:   "2026-03-08T17:00:00-05:00",
	}
	req := testutil.MakeRequest("POST", "/api/hackathons", body, nil)
	w := httptest.NewRecorder()
	h.Create(w, asUser(req, "admin@example.edu"))

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp struct {
		ID string `json:"id"`
	}
	testutil.AssertJSON(t, w, &resp)

	// Every hackathon starts with the four default categories.
	categories, err := getJudgeCategories(conn, resp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != len(defaultCategories) {
		t.Fatalf("got %d categories, want %d", len(categories), len(defaultCategories))
	}
	for i, c := range categories {
		if c.Name != defaultCategories[i] {
			t.Errorf("category %d = %q, want %q", i, c.Name, defaultCategories[i])
		}
		if c.Weight != 1.0 {
			t.Errorf("category %q weight = %v, want 1.0", c.Name, c.Weight)
		}
		if c.DisplayOrder != i {
			t.Errorf("category %q order = %d, want %d", c.Name, c.DisplayOrder, i)
		}
	}
}

func TestCreateHackathon_ScheduleValidation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewHackathonHandler(conn, testutil.GetTestConfig())

	voteExp := "2026-03-10T17:00:00-05:00"
	badReview := "2026-03-09T17:00:00-05:00" // before vote expiration

	tests := []struct {
		name string
		body models.CreateHackathonRequest
	}{
		{"end before start", models.CreateHackathonRequest{
			Name:      "Bad",
			StartTime: "2026-03-08T17:00:00-05:00",
			EndTime:   "2026-03-06T17:00:00-05:00",
		}},
		{"vote expiration before end", models.CreateHackathonRequest{
			Name:           "Bad",
			StartTime:      "2026-03-06T17:00:00-05:00",
			EndTime:        "2026-03-08T17:00:00-05:00",
			VoteExpiration: &[]string{"2026-03-07T17:00:00-05:00"}[0],
		}},
		{"review ends before vote expiration", models.CreateHackathonRequest{
			Name:           "Bad",
			StartTime:      "2026-03-06T17:00:00-05:00",
			EndTime:        "2026-03-08T17:00:00-05:00",
			VoteExpiration: &voteExp,
			ReviewEndsAt:   &badReview,
		}},
		{"malformed instant", models.CreateHackathonRequest{
			Name:      "Bad",
			StartTime: "03/06/2026",
			EndTime:   "2026-03-08T17:00:00-05:00",
		}},
		{"missing name", models.CreateHackathonRequest{
			StartTime: "2026-03-06T17:00:00-05:00",
			EndTime:   "2026-03-08T17:00:00-05:00",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/hackathons", tt.body, nil)
			w := httptest.NewRecorder()
			h.Create(w, asUser(req, "admin@example.edu"))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM hackathons`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("%d hackathons created from rejected requests", count)
	}
}

func TestConcludeHackathon(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewHackathonHandler(conn, testutil.GetTestConfig())

	start, end := endedHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)

	req := testutil.MakeRequest("POST", "/api/hackathons/"+hackathonID+"/conclude", nil, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()
	h.Conclude(w, asUser(req, "admin@example.edu"))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Status string `json:"status"`
	}
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != models.StatusConcluded {
		t.Errorf("status = %q, want concluded", resp.Status)
	}

	// Concluding twice is a conflict.
	req = testutil.MakeRequest("POST", "/api/hackathons/"+hackathonID+"/conclude", nil, nil)
	req.SetPathValue("id", hackathonID)
	w = httptest.NewRecorder()
	h.Conclude(w, asUser(req, "admin@example.edu"))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestDeleteHackathon_Cascades(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewHackathonHandler(conn, testutil.GetTestConfig())

	start, end := activeHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)
	projectID := testutil.CreateTestProject(t, conn, hackathonID, "Alpha", []string{"a@example.edu"})
	testutil.CastTestVote(t, conn, projectID, "voter@example.edu")
	testutil.CreateTestCategory(t, conn, hackathonID, "Technical", 1.0, 0)
	testutil.CreateTestJudgeCode(t, conn, hackathonID, "Judge", time.Now().Add(24*time.Hour))

	req := testutil.MakeRequest("DELETE", "/api/hackathons/"+hackathonID, nil, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()
	h.Delete(w, asUser(req, "admin@example.edu"))

	testutil.AssertStatus(t, w, http.StatusOK)

	for _, table := range []string{"projects", "popular_votes", "judge_categories", "judge_codes"} {
		var count int
		if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Errorf("%s not cascaded: %d rows remain", table, count)
		}
	}
}

func TestGetHackathon_NotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewHackathonHandler(conn, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/api/hackathons/nope", nil, nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()
	h.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestUpdateHackathon_RevalidatesSchedule(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewHackathonHandler(conn, testutil.GetTestConfig())

	start, end := activeHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)

	// Moving the start past the end must be rejected.
	badStart := end.Add(time.Hour).Format(time.RFC3339)
	req := testutil.MakeRequest("PUT", "/api/hackathons/"+hackathonID,
		models.UpdateHackathonRequest{StartTime: &badStart}, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()
	h.Update(w, asUser(req, "admin@example.edu"))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
