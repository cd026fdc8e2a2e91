// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package status

import (
	"time"

	"github.com/ebronson/hackboard/models"
)

// Status is the derived lifecycle state of a hackathon at one instant.
// There is no persisted state column: the same record yields different
// statuses at different evaluation times.
type Status struct {
	Status         string     `json:"status"`
	CanVote        bool       `json:"canVote"`
	CanSubmit      bool       `json:"canSubmit"`
	VoteExpiration time.Time  `json:"voteExpiration"`
	ReviewEndsAt   *time.Time `json:"reviewEndsAt,omitempty"`
	ResultsVisible bool       `json:"isPublicResultsVisible"`
}

// Compute derives the lifecycle state from a hackathon record and the
// current instant. Pure function: identical inputs yield identical
// output. Precedence, first match wins:
//
//	archived → concluded → review-period → upcoming → active → ended → vote_expired
func Compute(h models.Hackathon, now time.Time) Status {
	now = InEastern(now)
	start := InEastern(h.StartTime)
	end := InEastern(h.EndTime)

	voteExpiration := end.Add(models.DefaultVoteWindow)
	if h.VoteExpiration != nil {
		voteExpiration = InEastern(*h.VoteExpiration)
	}

	var reviewEndsAt *time.Time
	if h.ReviewEndsAt != nil {
		r := InEastern(*h.ReviewEndsAt)
		reviewEndsAt = &r
	}

	s := Status{
		VoteExpiration: voteExpiration,
		ReviewEndsAt:   reviewEndsAt,
	}

	switch {
	case h.Archived:
		s.Status = models.StatusArchived
		s.ResultsVisible = true

	case h.ConcludedAt != nil:
		s.Status = models.StatusConcluded
		s.ResultsVisible = true

	case reviewEndsAt != nil && !now.Before(voteExpiration) && now.Before(*reviewEndsAt):
		s.Status = models.StatusReviewPeriod

	case now.Before(start):
		s.Status = models.StatusUpcoming

	case now.Before(end):
		s.Status = models.StatusActive
		s.CanVote = true
		s.CanSubmit = true

	case now.Before(voteExpiration):
		s.Status = models.StatusEnded
		s.CanVote = true

	default:
		s.Status = models.StatusVoteExpired
		s.ResultsVisible = reviewEndsAt == nil || !now.Before(*reviewEndsAt)
	}

	return s
}
