// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Hackathon status constants
const (
	StatusUpcoming     = "upcoming"
	StatusActive       = "active"
	StatusEnded        = "ended"
	StatusVoteExpired  = "vote_expired"
	StatusReviewPeriod = "review-period"
	StatusConcluded    = "concluded"
	StatusArchived     = "archived"
)

// Eligibility denial reasons
const (
	ReasonHackathonConcluded = "hackathon_concluded"
	ReasonOwnProject         = "own_project"
	ReasonAlreadyVoted       = "already_voted_in_hackathon"
	ReasonVotingExpired      = "voting_expired"
	ReasonNotStarted         = "not_started"
	ReasonWrongHackathon     = "wrong_hackathon"
	ReasonCodeRevoked        = "code_revoked"
	ReasonCodeExpired        = "code_expired"
	ReasonCodeAlreadyUsed    = "code_already_used"
)

// DefaultVoteWindow is how long popular voting stays open after a
// hackathon ends when no explicit vote expiration is configured.
const DefaultVoteWindow = 7 * 24 * time.Hour

// CommentEditWindow is how long a comment's author may edit or delete it.
const CommentEditWindow = 15 * time.Minute

// Request types

type CreateHackathonRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	VoteExpiration *string `json:"vote_expiration,omitempty"`
	ReviewEndsAt   *string `json:"review_ends_at,omitempty"`
}

type UpdateHackathonRequest struct {
	Name                *string `json:"name,omitempty"`
	Description         *string `json:"description,omitempty"`
	StartTime           *string `json:"start_time,omitempty"`
	EndTime             *string `json:"end_time,omitempty"`
	VoteExpiration      *string `json:"vote_expiration,omitempty"`
	ReviewEndsAt        *string `json:"review_ends_at,omitempty"`
	KeepPopularVoteOpen *bool   `json:"keep_popular_vote_open,omitempty"`
}

type CreateProjectRequest struct {
	Name       string   `json:"name"`
	TeamEmails []string `json:"team_emails"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	GithubLink  *string `json:"github_link,omitempty"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type CreateJudgeRequest struct {
	JudgeName          string `json:"judge_name"`
	AnonymousResponses bool   `json:"anonymous_responses"`
}

type UpdateJudgeRequest struct {
	JudgeName          *string `json:"judge_name,omitempty"`
	AnonymousResponses *bool   `json:"anonymous_responses,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Weight      *float64 `json:"weight,omitempty"`
}

type UpdateCategoryRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	DisplayOrder *int     `json:"display_order,omitempty"`
}

type ReorderCategoriesRequest struct {
	CategoryIDs []string `json:"category_ids"`
}

type AddAdminRequest struct {
	Email string `json:"email"`
}

// Domain types

type Hackathon struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             time.Time  `json:"end_time"`
	VoteExpiration      *time.Time `json:"vote_expiration,omitempty"`
	ReviewEndsAt        *time.Time `json:"review_ends_at,omitempty"`
	ConcludedAt         *time.Time `json:"concluded_at,omitempty"`
	ConcludedBy         *string    `json:"concluded_by,omitempty"`
	Archived            bool       `json:"archived"`
	KeepPopularVoteOpen bool       `json:"keep_popular_vote_open"`
	CreatedBy           string     `json:"created_by"`
	CreatedAt           time.Time  `json:"created_at"`
}

type Project struct {
	ID                      string     `json:"id"`
	HackathonID             string     `json:"hackathon_id"`
	Name                    string     `json:"name"`
	Description             string     `json:"description"`
	GithubLink              string     `json:"github_link"`
	TeamEmails              TeamEmails `json:"team_emails"`
	DeadlineOverrideEnabled bool       `json:"deadline_override_enabled"`
	DeadlineOverrideBy      *string    `json:"deadline_override_by,omitempty"`
	DeadlineOverrideAt      *time.Time `json:"deadline_override_at,omitempty"`
	CreatedBy               string     `json:"created_by"`
	CreatedAt               time.Time  `json:"created_at"`

	// Populated by list/detail queries, not stored columns.
	VoteCount    int `json:"vote_count"`
	CommentCount int `json:"comment_count"`
}

type JudgeCategory struct {
	ID           string    `json:"id"`
	HackathonID  string    `json:"hackathon_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Weight       float64   `json:"weight"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type JudgeCode struct {
	ID                 string     `json:"id"`
	HackathonID        string     `json:"hackathon_id"`
	Code               string     `json:"-"` // Never expose in listings
	JudgeName          string     `json:"judge_name"`
	CreatedBy          string     `json:"created_by"`
	ExpiresAt          time.Time  `json:"expires_at"`
	Revoked            bool       `json:"revoked"`
	Voted              bool       `json:"voted"`
	VotedAt            *time.Time `json:"voted_at,omitempty"`
	AnonymousResponses bool       `json:"anonymous_responses"`
	CreatedAt          time.Time  `json:"created_at"`
}

type JudgeCategoryVote struct {
	JudgeCodeID string    `json:"judge_code_id"`
	ProjectID   string    `json:"project_id"`
	CategoryID  string    `json:"category_id"`
	Score       int       `json:"score"`
	Comment     *string   `json:"comment,omitempty"`
	VotedAt     time.Time `json:"voted_at"`
}

type PopularVote struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	UserEmail   string    `json:"user_email"`
	DisplayName string    `json:"display_name"`
	Content     string    `json:"content"`
	Deleted     bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Admin struct {
	Email   string    `json:"email"`
	AddedBy string    `json:"added_by"`
	AddedAt time.Time `json:"added_at"`
}

type AuditEntry struct {
	ID           string    `json:"id"`
	ActorEmail   string    `json:"actor_email"`
	ActionType   string    `json:"action_type"`
	TargetEntity string    `json:"target_entity"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
