// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package status

import (
	"time"

	"github.com/ebronson/hackboard/models"
)

// Decision is an eligibility outcome with a machine-readable reason.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r string) Decision { return Decision{Allowed: false, Reason: r} }

// CanVoteOnProject decides whether voterEmail may cast a popular vote
// on the project. Popular voting has no time-window restriction: it
// stays open through ended, vote_expired, and review-period, unless the
// hackathon is concluded without keep_popular_vote_open. The
// one-vote-per-hackathon rule is enforced separately by the caller.
func CanVoteOnProject(h models.Hackathon, voterEmail string, p models.Project) Decision {
	if h.ConcludedAt != nil && !h.KeepPopularVoteOpen {
		return deny(models.ReasonHackathonConcluded)
	}
	if p.TeamEmails.Contains(voterEmail) {
		return deny(models.ReasonOwnProject)
	}
	return allow()
}

// CanEditProject decides whether userEmail may edit the project at the
// given instant. Admins always may; the per-project deadline override
// is the admin escape hatch for team members after the deadline.
func CanEditProject(p models.Project, h models.Hackathon, userEmail string, isAdmin bool, now time.Time) bool {
	if isAdmin {
		return true
	}
	if !p.TeamEmails.Contains(userEmail) {
		return false
	}
	if p.DeadlineOverrideEnabled {
		return true
	}
	return Compute(h, now).Status == models.StatusActive
}

// CheckJudgeCode validates a presented judge code against its hackathon
// at the given instant. Checks run in a fixed order so the caller can
// surface the first failure. Judge scoring opens only once submissions
// close: upcoming and active hackathons reject with not_started.
func CheckJudgeCode(code models.JudgeCode, hackathonID string, h models.Hackathon, now time.Time) Decision {
	if code.HackathonID != hackathonID {
		return deny(models.ReasonWrongHackathon)
	}
	if code.Revoked {
		return deny(models.ReasonCodeRevoked)
	}
	if code.Voted {
		return deny(models.ReasonCodeAlreadyUsed)
	}
	if InEastern(now).After(InEastern(code.ExpiresAt)) {
		return deny(models.ReasonCodeExpired)
	}

	s := Compute(h, now)
	if !InEastern(now).Before(s.VoteExpiration) {
		return deny(models.ReasonVotingExpired)
	}
	if s.Status == models.StatusUpcoming || s.Status == models.StatusActive {
		return deny(models.ReasonNotStarted)
	}
	return allow()
}
