// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Hackathon: event metadata and lifecycle timestamps
  - Project: team submission with validated member emails
  - JudgeCategory: weighted rubric category
  - JudgeCode: one-shot judge identity (code, expiry, voted flag)
  - JudgeCategoryVote: a judge's score for one project/category pair
  - PopularVote: one user's vote for a project
  - Comment: soft-deleted project comment
  - Admin, AuditEntry: admin whitelist and audit trail rows

# Team Emails

TeamEmails is an ordered, validated collection of member addresses. It
is JSON-encoded into a single column only at the persistence boundary
(driver.Valuer / sql.Scanner); the rest of the code works with the
typed slice.

# Judge Submission Payload

SubmitJudgeVotesRequest carries either per-category scores or a legacy
single score per project. ProjectVotes.Resolve collapses both variants
into the canonical per-category map before any score reaches the
aggregator.

# Constants

Hackathon statuses:

	upcoming → active → ended → vote_expired
	(review-period between vote expiration and review end)
	concluded and archived are admin-forced terminal states

Eligibility denial reasons:

	hackathon_concluded, own_project, already_voted_in_hackathon,
	voting_expired, not_started
*/
package models
