// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"testing"

	"github.com/ebronson/hackboard/models"
)

func TestSummarize_WeightedAverage(t *testing.T) {
	// Technical Merit (weight 2) mean 8.0, Presentation (weight 1)
	// mean 5.0: (8.0*2 + 5.0*1) / 3 = 7.00.
	votes := []Vote{
		{JudgeCodeID: "j1", ProjectID: "p1", CategoryID: "tech", Score: 8},
		{JudgeCodeID: "j2", ProjectID: "p1", CategoryID: "tech", Score: 8},
		{JudgeCodeID: "j1", ProjectID: "p1", CategoryID: "pres", Score: 5},
	}
	weights := map[string]float64{"tech": 2.0, "pres": 1.0}

	s := Summarize("p1", "Alpha", 3, votes, weights)

	if s.AvgJudgeScore == nil {
		t.Fatal("avg is nil, want 7.00")
	}
	if *s.AvgJudgeScore != 7.00 {
		t.Errorf("avg = %v, want 7.00", *s.AvgJudgeScore)
	}
	if s.MinJudgeScore == nil || *s.MinJudgeScore != 5 {
		t.Errorf("min = %v, want 5 (raw score, not category mean)", s.MinJudgeScore)
	}
	if s.MaxJudgeScore == nil || *s.MaxJudgeScore != 8 {
		t.Errorf("max = %v, want 8", s.MaxJudgeScore)
	}
	if s.JudgeVoteCount != 2 {
		t.Errorf("judge count = %d, want 2 distinct judges", s.JudgeVoteCount)
	}
	if s.PopularVotes != 3 {
		t.Errorf("popular votes = %d, want 3", s.PopularVotes)
	}
}

func TestSummarize_Rounding(t *testing.T) {
	// One category, scores 7 and 8: mean 7.5. Two categories with means
	// 7.0 and 7.33 (scores 7,8,7 across 3 votes in cat b): weighted
	// equal weights → (7.0 + 22/3) / 2 = 7.17 after rounding.
	votes := []Vote{
		{JudgeCodeID: "j1", ProjectID: "p1", CategoryID: "a", Score: 7},
		{JudgeCodeID: "j1", ProjectID: "p1", CategoryID: "b", Score: 7},
		{JudgeCodeID: "j2", ProjectID: "p1", CategoryID: "b", Score: 8},
		{JudgeCodeID: "j3", ProjectID: "p1", CategoryID: "b", Score: 7},
	}
	s := Summarize("p1", "Alpha", 0, votes, map[string]float64{"a": 1, "b": 1})
	if s.AvgJudgeScore == nil || *s.AvgJudgeScore != 7.17 {
		t.Errorf("avg = %v, want 7.17 (rounded to 2 decimal places)", s.AvgJudgeScore)
	}
}

func TestSummarize_NoVotes(t *testing.T) {
	s := Summarize("p1", "Alpha", 5, nil, map[string]float64{})
	if s.AvgJudgeScore != nil || s.MinJudgeScore != nil || s.MaxJudgeScore != nil {
		t.Errorf("unscored project must report nil scores, got %+v", s)
	}
	if s.JudgeVoteCount != 0 {
		t.Errorf("judge count = %d, want 0", s.JudgeVoteCount)
	}
	if s.PopularVotes != 5 {
		t.Errorf("popular votes = %d, want 5", s.PopularVotes)
	}
}

func TestSummarize_UnknownCategoryDefaultsWeight(t *testing.T) {
	votes := []Vote{
		{JudgeCodeID: "j1", ProjectID: "p1", CategoryID: "ghost", Score: 6},
	}
	s := Summarize("p1", "Alpha", 0, votes, map[string]float64{})
	if s.AvgJudgeScore == nil || *s.AvgJudgeScore != 6.00 {
		t.Errorf("avg = %v, want 6.00 with weight defaulting to 1", s.AvgJudgeScore)
	}
}

func TestSortSummaries(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	summaries := []ProjectSummary{
		{ProjectID: "unscored", PopularVotes: 10},
		{ProjectID: "low", AvgJudgeScore: f(5.00), PopularVotes: 0},
		{ProjectID: "high", AvgJudgeScore: f(9.00), PopularVotes: 0},
		{ProjectID: "tied-popular", AvgJudgeScore: f(5.00), PopularVotes: 4},
	}

	SortSummaries(summaries)

	want := []string{"high", "tied-popular", "low", "unscored"}
	for i, id := range want {
		if summaries[i].ProjectID != id {
			t.Errorf("position %d = %s, want %s", i, summaries[i].ProjectID, id)
		}
	}
}

func TestCategoryWinners_Unweighted(t *testing.T) {
	categories := []models.JudgeCategory{
		{ID: "tech", Name: "Technical Merit", Weight: 3.0, DisplayOrder: 1},
		{ID: "pres", Name: "Presentation", Weight: 1.0, DisplayOrder: 0},
	}
	votes := []Vote{
		{JudgeCodeID: "j1", ProjectID: "p1", CategoryID: "tech", Score: 9},
		{JudgeCodeID: "j1", ProjectID: "p2", CategoryID: "tech", Score: 7},
		{JudgeCodeID: "j1", ProjectID: "p1", CategoryID: "pres", Score: 4},
		{JudgeCodeID: "j1", ProjectID: "p2", CategoryID: "pres", Score: 8},
	}
	names := map[string]string{"p1": "Alpha", "p2": "Beta"}

	results := CategoryWinners(categories, votes, names)

	if len(results) != 2 {
		t.Fatalf("got %d categories, want 2", len(results))
	}
	// Display order, not configuration order.
	if results[0].ID != "pres" || results[1].ID != "tech" {
		t.Errorf("categories out of display order: %s, %s", results[0].ID, results[1].ID)
	}
	if len(results[0].Winners) != 1 || results[0].Winners[0].ProjectID != "p2" {
		t.Errorf("presentation winner = %+v, want p2", results[0].Winners)
	}
	if len(results[1].Winners) != 1 || results[1].Winners[0].ProjectID != "p1" {
		t.Errorf("technical winner = %+v, want p1", results[1].Winners)
	}
	// Category means ignore the category weight.
	if results[1].Winners[0].AverageScore != 9.00 {
		t.Errorf("winner mean = %v, want unweighted 9.00", results[1].Winners[0].AverageScore)
	}
}

func TestCategoryWinners_Ties(t *testing.T) {
	categories := []models.JudgeCategory{{ID: "c1", Name: "Design"}}
	votes := []Vote{
		{JudgeCodeID: "j1", ProjectID: "p1", CategoryID: "c1", Score: 9},
		{JudgeCodeID: "j1", ProjectID: "p2", CategoryID: "c1", Score: 9},
		{JudgeCodeID: "j1", ProjectID: "p3", CategoryID: "c1", Score: 8},
	}

	results := CategoryWinners(categories, votes, map[string]string{})

	if len(results[0].Winners) != 2 {
		t.Fatalf("got %d winners, want both projects tied at 9.00", len(results[0].Winners))
	}
}

func TestCategoryWinners_EmptyCategory(t *testing.T) {
	categories := []models.JudgeCategory{{ID: "c1", Name: "Design"}}

	results := CategoryWinners(categories, nil, map[string]string{})

	if len(results) != 1 {
		t.Fatalf("got %d categories, want 1", len(results))
	}
	if len(results[0].Winners) != 0 {
		t.Errorf("unscored category has winners: %+v", results[0].Winners)
	}
}

func TestOverallWinner(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	t.Run("ties produce multiple winners", func(t *testing.T) {
		overall := OverallWinner([]ProjectSummary{
			{ProjectID: "p1", Name: "Alpha", AvgJudgeScore: f(9.00)},
			{ProjectID: "p2", Name: "Beta", AvgJudgeScore: f(9.00)},
			{ProjectID: "p3", Name: "Gamma", AvgJudgeScore: f(8.50)},
		})
		if len(overall.Winners) != 2 {
			t.Fatalf("got %d winners, want 2", len(overall.Winners))
		}
		if overall.TopScore == nil || *overall.TopScore != 9.00 {
			t.Errorf("top score = %v, want 9.00", overall.TopScore)
		}
	})

	t.Run("no scored projects yields empty winner set", func(t *testing.T) {
		overall := OverallWinner([]ProjectSummary{
			{ProjectID: "p1", PopularVotes: 12},
		})
		if len(overall.Winners) != 0 {
			t.Errorf("winners = %+v, want none", overall.Winners)
		}
		if overall.TopScore != nil {
			t.Errorf("top score = %v, want nil", *overall.TopScore)
		}
	})
}
