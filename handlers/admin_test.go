// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ebronson/hackboard/models"
	"github.com/ebronson/hackboard/testutil"
)

func TestAddAndRemoveAdmin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewAdminHandler(conn, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/api/admins",
		models.AddAdminRequest{Email: "New.Admin@Example.edu"}, nil)
	w := httptest.NewRecorder()
	h.AddAdmin(w, asUser(req, "boss@example.edu"))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Stored lowercased.
	var exists bool
	if err := conn.QueryRow(`SELECT EXISTS(SELECT 1 FROM admins WHERE email = 'new.admin@example.edu')`).Scan(&exists); err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("admin not stored")
	}

	req = testutil.MakeRequest("DELETE", "/api/admins/new.admin@example.edu", nil, nil)
	req.SetPathValue("email", "new.admin@example.edu")
	w = httptest.NewRecorder()
	h.RemoveAdmin(w, asUser(req, "boss@example.edu"))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestRemoveAdmin_Protections(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewAdminHandler(conn, cfg)

	t.Run("super admin is untouchable", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/admins/"+cfg.SuperAdmin, nil, nil)
		req.SetPathValue("email", cfg.SuperAdmin)
		w := httptest.NewRecorder()
		h.RemoveAdmin(w, asUser(req, "boss@example.edu"))
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("no self-removal", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/api/admins/boss@example.edu", nil, nil)
		req.SetPathValue("email", "boss@example.edu")
		w := httptest.NewRecorder()
		h.RemoveAdmin(w, asUser(req, "boss@example.edu"))
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
}

func TestCreateJudge(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewAdminHandler(conn, cfg)

	start, end := activeHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)

	req := testutil.MakeRequest("POST", "/api/hackathons/"+hackathonID+"/judges",
		models.CreateJudgeRequest{JudgeName: "Judge Judy", AnonymousResponses: true}, nil)
	req.SetPathValue("id", hackathonID)
	w := httptest.NewRecorder()
	h.CreateJudge(w, asUser(req, "admin@example.edu"))

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp struct {
		ID        string `json:"id"`
		JudgeName string `json:"judge_name"`
		Link      string `json:"link"`
	}
	testutil.AssertJSON(t, w, &resp)
	if resp.JudgeName != "Judge Judy" {
		t.Errorf("judge_name = %q", resp.JudgeName)
	}
	if !strings.Contains(resp.Link, hackathonID) || !strings.Contains(resp.Link, "judgevote?code=") {
		t.Errorf("link = %q, want judge voting URL", resp.Link)
	}

	var expiresAt time.Time
	if err := conn.QueryRow(`SELECT expires_at FROM judge_codes WHERE id = $1`, resp.ID).Scan(&expiresAt); err != nil {
		t.Fatal(err)
	}
	want := time.Now().Add(time.Duration(cfg.JudgeCodeExpiryHours) * time.Hour)
	if diff := expiresAt.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expires_at = %v, want about %v", expiresAt, want)
	}
}

func TestRevokeJudge(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewAdminHandler(conn, testutil.GetTestConfig())

	start, end := activeHackathonTimes()
	hackathonID := testutil.CreateTestHackathon(t, conn, start, end, nil, nil)
	judgeID, _ := testutil.CreateTestJudgeCode(t, conn, hackathonID, "Judge", time.Now().Add(24*time.Hour))

	req := testutil.MakeRequest("POST", "/api/judges/"+judgeID+"/revoke", nil, nil)
	req.SetPathValue("id", judgeID)
	w := httptest.NewRecorder()
	h.RevokeJudge(w, asUser(req, "admin@example.edu"))

	testutil.AssertStatus(t, w, http.StatusOK)

	var revoked bool
	if err := conn.QueryRow(`SELECT revoked FROM judge_codes WHERE id = $1`, judgeID).Scan(&revoked); err != nil {
		t.Fatal(err)
	}
	if !revoked {
		t.Error("judge code not revoked")
	}
}

func TestAdminActionsAreAudited(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewAdminHandler(conn, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/api/admins",
		models.AddAdminRequest{Email: "x@example.edu"}, nil)
	w := httptest.NewRecorder()
	h.AddAdmin(w, asUser(req, "boss@example.edu"))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var actionType, actor string
	err := conn.QueryRow(`
		SELECT action_type, actor_email FROM audit_logs ORDER BY created_at DESC LIMIT 1
	`).Scan(&actionType, &actor)
	if err != nil {
		t.Fatal(err)
	}
	if actionType != "admin_added" || actor != "boss@example.edu" {
		t.Errorf("audit entry = %s by %s", actionType, actor)
	}
}

func TestDashboard(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewAdminHandler(conn, testutil.GetTestConfig())

	start, end := activeHackathonTimes()
	testutil.CreateTestHackathon(t, conn, start, end, nil, nil)

	req := testutil.MakeRequest("GET", "/api/admin/dashboard", nil, nil)
	w := httptest.NewRecorder()
	h.Dashboard(w, asUser(req, "boss@example.edu"))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Hackathons []map[string]interface{} `json:"hackathons"`
		Admins     []models.Admin           `json:"admins"`
		AuditLog   []models.AuditEntry      `json:"audit_log"`
	}
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Hackathons) != 1 {
		t.Errorf("dashboard lists %d hackathons, want 1", len(resp.Hackathons))
	}
}
