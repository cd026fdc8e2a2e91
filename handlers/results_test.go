// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ebronson/hackboard/scoring"
	"github.com/ebronson/hackboard/testutil"
)

func TestResults_HiddenWhileVotingOpen(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewResultsHandler(conn, testutil.GetTestConfig())

	start, end := activeHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)

	req := testutil.MakeRequest("GET", "/api/hackathons/"+hackathonID+"/results", nil, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()
	h.Hackathon(w, asUser(req, "student@example.edu"))

	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestResults_AdminPreview(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewResultsHandler(conn, cfg)

	start, end := activeHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)

	req := testutil.MakeRequest("GET", "/api/hackathons/"+hackathonID+"/results", nil, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()
	h.Hackathon(w, asUser(req, cfg.SuperAdmin))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Preview bool `json:"preview"`
	}
	testutil.AssertJSON(t, w, &resp)
	if !resp.Preview {
		t.Error("admin view before visibility should be flagged as preview")
	}
}

func TestResults_VisibleAfterConclusion(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewResultsHandler(conn, testutil.GetTestConfig())

	start, end := endedHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)
	testutil.ConcludeTestHackathon(t, conn, hackathonID)

	p1 := testutil.CreateTestProject(t, conn, hackathonID, "Alpha", []string{"a@example.edu"})
	p2 := testutil.CreateTestProject(t, conn, hackathonID, "Beta", []string{"b@example.edu"})
	tech := testutil.CreateTestCategory(t, conn, hackathonID, "Technical", 2.0, 0)
	pres := testutil.CreateTestCategory(t, conn, hackathonID, "Presentation", 1.0, 1)
	judgeID, _ := testutil.CreateTestJudgeCode(t, conn, hackathonID, "Judge", time.Now().Add(24*time.Hour))

	// Alpha: tech 8, pres 5 → weighted (8*2 + 5*1)/3 = 7.00
	testutil.ScoreTestProject(t, conn, judgeID, p1, tech, 8)
	testutil.ScoreTestProject(t, conn, judgeID, p1, pres, 5)
	// Beta: pres 9 only → 9.00, but tech winner is Alpha.
	testutil.ScoreTestProject(t, conn, judgeID, p2, pres, 9)
	testutil.CastTestVote(t, conn, p1, "voter@example.edu")

	req := testutil.MakeRequest("GET", "/api/hackathons/"+hackathonID+"/results", nil, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()
	h.Hackathon(w, asUser(req, "student@example.edu"))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Summary  []scoring.ProjectSummary `json:"summary"`
		Detailed []struct {
			ProjectID   string `json:"project_id"`
			ProjectName string `json:"project_name"`
			Scores      []struct {
				CategoryName string `json:"category_name"`
				Score        int    `json:"score"`
				JudgeName    string `json:"judge_name"`
			} `json:"scores"`
		} `json:"detailed"`
		CategoryWinners []scoring.CategoryResult `json:"category_winners"`
		Overall         scoring.Overall          `json:"overall"`
		Preview         bool                     `json:"preview"`
	}
	testutil.AssertJSON(t, w, &resp)

	if resp.Preview {
		t.Error("concluded results should not be a preview")
	}
	if len(resp.Summary) != 2 {
		t.Fatalf("summary has %d projects, want 2", len(resp.Summary))
	}
	// Beta's 9.00 outranks Alpha's 7.00.
	if resp.Summary[0].ProjectID != p2 {
		t.Errorf("top ranked = %s, want Beta", resp.Summary[0].ProjectID)
	}
	if resp.Summary[1].AvgJudgeScore == nil || *resp.Summary[1].AvgJudgeScore != 7.00 {
		t.Errorf("Alpha avg = %v, want 7.00", resp.Summary[1].AvgJudgeScore)
	}

	if len(resp.CategoryWinners) != 2 {
		t.Fatalf("got %d category results, want 2", len(resp.CategoryWinners))
	}
	techResult := resp.CategoryWinners[0]
	if len(techResult.Winners) != 1 || techResult.Winners[0].ProjectID != p1 {
		t.Errorf("technical winner = %+v, want Alpha", techResult.Winners)
	}

	if len(resp.Overall.Winners) != 1 || resp.Overall.Winners[0].ProjectID != p2 {
		t.Errorf("overall winner = %+v, want Beta", resp.Overall.Winners)
	}

	// Individual judge scores come back grouped per project, in
	// creation order.
	if len(resp.Detailed) != 2 {
		t.Fatalf("detailed has %d projects, want 2", len(resp.Detailed))
	}
	if resp.Detailed[0].ProjectID != p1 || len(resp.Detailed[0].Scores) != 2 {
		t.Errorf("detailed[0] = %s with %d scores, want Alpha with 2", resp.Detailed[0].ProjectName, len(resp.Detailed[0].Scores))
	}
	if resp.Detailed[1].ProjectID != p2 || len(resp.Detailed[1].Scores) != 1 {
		t.Errorf("detailed[1] = %s with %d scores, want Beta with 1", resp.Detailed[1].ProjectName, len(resp.Detailed[1].Scores))
	}
	if resp.Detailed[1].Scores[0].Score != 9 || resp.Detailed[1].Scores[0].JudgeName != "Judge" {
		t.Errorf("Beta score = %+v, want 9 from Judge", resp.Detailed[1].Scores[0])
	}
}

func TestResults_DetailedMasksAnonymousJudges(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewResultsHandler(conn, cfg)

	start, end := endedHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)
	testutil.ConcludeTestHackathon(t, conn, hackathonID)
	projectID := testutil.CreateTestProject(t, conn, hackathonID, "Alpha", []string{"a@example.edu"})
	cat := testutil.CreateTestCategory(t, conn, hackathonID, "Technical", 1.0, 0)
	judgeID, _ := testutil.CreateTestJudgeCode(t, conn, hackathonID, "Dr. Secret", time.Now().Add(24*time.Hour))
	if _, err := conn.Exec(`UPDATE judge_codes SET anonymous_responses = TRUE WHERE id = $1`, judgeID); err != nil {
		t.Fatal(err)
	}
	testutil.ScoreTestProject(t, conn, judgeID, projectID, cat, 8)

	fetch := func(email string) string {
		t.Helper()
		req := testutil.MakeRequest("GET", "/api/hackathons/"+hackathonID+"/results", nil, nil)
		req.SetPathValue("id", hackathonID)
		w := httptest.NewRecorder()
		h.Hackathon(w, asUser(req, email))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Detailed []struct {
				Scores []struct {
					JudgeName string `json:"judge_name"`
				} `json:"scores"`
			} `json:"detailed"`
		}
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Detailed) != 1 || len(resp.Detailed[0].Scores) != 1 {
			t.Fatalf("detailed = %+v, want one project with one score", resp.Detailed)
		}
		return resp.Detailed[0].Scores[0].JudgeName
	}

	if name := fetch("student@example.edu"); name != "Anonymous" {
		t.Errorf("judge_name = %q for a regular viewer, want Anonymous", name)
	}
	if name := fetch(cfg.SuperAdmin); name != "Dr. Secret" {
		t.Errorf("judge_name = %q for an admin, want the real name", name)
	}
}

func TestProjectScores_AnonymousJudges(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewResultsHandler(conn, testutil.GetTestConfig())

	start, end := endedHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)
	testutil.ConcludeTestHackathon(t, conn, hackathonID)
	projectID := testutil.CreateTestProject(t, conn, hackathonID, "Alpha", []string{"a@example.edu"})
	cat := testutil.CreateTestCategory(t, conn, hackathonID, "Technical", 1.0, 0)
	judgeID, _ := testutil.CreateTestJudgeCode(t, conn, hackathonID, "Dr. Secret", time.Now().Add(24*time.Hour))
	if _, err := conn.Exec(`UPDATE judge_codes SET anonymous_responses = TRUE WHERE id = $1`, judgeID); err != nil {
		t.Fatal(err)
	}
	testutil.ScoreTestProject(t, conn, judgeID, projectID, cat, 8)

	req := testutil.MakeRequest("GET", "/api/projects/"+projectID+"/scores", nil, nil)
	req.SetPathValue("id", projectID)
	w := httptest.NewRecorder()
	h.ProjectScores(w, asUser(req, "student@example.edu"))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Scores []struct {
			JudgeName string `json:"judge_name"`
			Score     int    `json:"score"`
		} `json:"scores"`
	}
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Scores) != 1 {
		t.Fatalf("got %d scores, want 1", len(resp.Scores))
	}
	if resp.Scores[0].JudgeName != "Anonymous" {
		t.Errorf("judge_name = %q, want Anonymous for non-admin viewers", resp.Scores[0].JudgeName)
	}
}
