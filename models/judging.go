// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrEmptyProjectVotes = errors.New("project entry has neither categories nor a score")

// SubmitJudgeVotesRequest is the judge score submission payload:
//
//	{"code": "...", "votes": {projectID: {"categories": {categoryID: {"score": 1..10, "comment": "..."}}}}}
//
// A legacy submission may instead carry a single score per project,
// which is applied identically to every configured category.
type SubmitJudgeVotesRequest struct {
	Code  string                  `json:"code"`
	Votes map[string]ProjectVotes `json:"votes"`
}

// ProjectVotes is one project's entry in a submission. Exactly one of
// the two variants is used: the per-category map, or the single-score
// fallback.
type ProjectVotes struct {
	Categories map[string]ScoreEntry `json:"categories,omitempty"`
	Score      *int                  `json:"score,omitempty"`
	Comment    *string               `json:"comment,omitempty"`
}

// ScoreEntry is a single category score. It decodes from either an
// object ({"score": 7, "comment": "..."}) or a bare number.
type ScoreEntry struct {
	Score   int     `json:"score"`
	Comment *string `json:"comment,omitempty"`
}

func (s *ScoreEntry) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		s.Score = n
		s.Comment = nil
		return nil
	}

	type plain ScoreEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("score entry must be a number or an object: %w", err)
	}
	*s = ScoreEntry(p)
	return nil
}

// Resolve flattens a ProjectVotes into the canonical per-category form.
// The single-score fallback fans out to every configured category.
func (pv ProjectVotes) Resolve(categories []JudgeCategory) (map[string]ScoreEntry, error) {
	if len(pv.Categories) > 0 {
		return pv.Categories, nil
	}
	if pv.Score == nil {
		return nil, ErrEmptyProjectVotes
	}

	resolved := make(map[string]ScoreEntry, len(categories))
	for _, cat := range categories {
		resolved[cat.ID] = ScoreEntry{Score: *pv.Score, Comment: pv.Comment}
	}
	return resolved, nil
}
