// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"math"
	"sort"

	"github.com/ebronson/hackboard/models"
)

// Vote is the slice of a judge category vote the aggregator needs.
type Vote struct {
	JudgeCodeID string
	ProjectID   string
	CategoryID  string
	Score       int
}

// ProjectSummary is the ranked score summary for one project. The three
// judge-score fields are nil (never zero) when the project has no
// category votes.
type ProjectSummary struct {
	ProjectID      string   `json:"id"`
	Name           string   `json:"name"`
	AvgJudgeScore  *float64 `json:"avg_judge_score"`
	MinJudgeScore  *int     `json:"min_judge_score"`
	MaxJudgeScore  *int     `json:"max_judge_score"`
	PopularVotes   int      `json:"popular_votes"`
	JudgeVoteCount int      `json:"judge_vote_count"`
}

// ProjectAverage is a project's mean score within one category, or its
// weighted average for the overall ranking.
type ProjectAverage struct {
	ProjectID    string  `json:"project_id"`
	ProjectName  string  `json:"project_name"`
	AverageScore float64 `json:"average_score"`
}

// CategoryResult is one rubric category with its ranked averages and
// winner set. Ties at the maximum produce multiple winners.
type CategoryResult struct {
	models.JudgeCategory
	Winners  []ProjectAverage `json:"winners"`
	Averages []ProjectAverage `json:"averages"`
}

// Overall is the grand-prize result across all scored projects.
type Overall struct {
	Winners  []ProjectAverage `json:"winners"`
	TopScore *float64         `json:"top_score"`
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Summarize aggregates one project's raw category votes into its score
// summary. The weighted average is Σ(category mean × weight) / Σ(weight)
// over the categories the project was scored in, rounded to 2 decimal
// places. Min and max are taken over the raw individual scores, not
// over category means.
func Summarize(projectID, name string, popularVotes int, votes []Vote, weights map[string]float64) ProjectSummary {
	s := ProjectSummary{
		ProjectID:    projectID,
		Name:         name,
		PopularVotes: popularVotes,
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	judges := make(map[string]bool)
	var minScore, maxScore int
	for _, v := range votes {
		if v.ProjectID != projectID {
			continue
		}
		sums[v.CategoryID] += v.Score
		counts[v.CategoryID]++
		judges[v.JudgeCodeID] = true
		if s.MinJudgeScore == nil || v.Score < minScore {
			minScore = v.Score
			s.MinJudgeScore = &minScore
		}
		if s.MaxJudgeScore == nil || v.Score > maxScore {
			maxScore = v.Score
			s.MaxJudgeScore = &maxScore
		}
	}
	s.JudgeVoteCount = len(judges)

	if len(counts) == 0 {
		return s
	}

	var weightedSum, totalWeight float64
	for catID, count := range counts {
		weight, ok := weights[catID]
		if !ok {
			weight = 1.0
		}
		mean := float64(sums[catID]) / float64(count)
		weightedSum += mean * weight
		totalWeight += weight
	}
	if totalWeight > 0 {
		avg := round2(weightedSum / totalWeight)
		s.AvgJudgeScore = &avg
	}

	return s
}

// SortSummaries orders summaries for ranking: weighted average score
// descending with nil scores last, then popular votes descending.
func SortSummaries(summaries []ProjectSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		switch {
		case a.AvgJudgeScore == nil && b.AvgJudgeScore == nil:
			return a.PopularVotes > b.PopularVotes
		case a.AvgJudgeScore == nil:
			return false
		case b.AvgJudgeScore == nil:
			return true
		case *a.AvgJudgeScore != *b.AvgJudgeScore:
			return *a.AvgJudgeScore > *b.AvgJudgeScore
		default:
			return a.PopularVotes > b.PopularVotes
		}
	})
}

// CategoryWinners computes, for each configured category in display
// order, every project's unweighted mean within that category and the
// set of projects tied at the maximum. Category awards deliberately
// ignore weights; only the overall ranking is weighted.
func CategoryWinners(categories []models.JudgeCategory, votes []Vote, projectNames map[string]string) []CategoryResult {
	ordered := make([]models.JudgeCategory, len(categories))
	copy(ordered, categories)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	results := make([]CategoryResult, 0, len(ordered))
	for _, cat := range ordered {
		sums := make(map[string]int)
		counts := make(map[string]int)
		for _, v := range votes {
			if v.CategoryID != cat.ID {
				continue
			}
			sums[v.ProjectID] += v.Score
			counts[v.ProjectID]++
		}

		averages := make([]ProjectAverage, 0, len(counts))
		for projectID, count := range counts {
			averages = append(averages, ProjectAverage{
				ProjectID:    projectID,
				ProjectName:  projectNames[projectID],
				AverageScore: round2(float64(sums[projectID]) / float64(count)),
			})
		}
		sort.SliceStable(averages, func(i, j int) bool {
			if averages[i].AverageScore != averages[j].AverageScore {
				return averages[i].AverageScore > averages[j].AverageScore
			}
			return averages[i].ProjectID < averages[j].ProjectID
		})

		winners := []ProjectAverage{}
		if len(averages) > 0 {
			top := averages[0].AverageScore
			for _, a := range averages {
				if a.AverageScore == top {
					winners = append(winners, a)
				}
			}
		}

		results = append(results, CategoryResult{
			JudgeCategory: cat,
			Winners:       winners,
			Averages:      averages,
		})
	}

	return results
}

// OverallWinner finds every project exactly tied at the maximum
// weighted average. Projects without judge scores do not participate;
// with no scored projects at all, the winner set is empty and the top
// score nil.
func OverallWinner(summaries []ProjectSummary) Overall {
	var overall Overall
	for _, s := range summaries {
		if s.AvgJudgeScore == nil {
			continue
		}
		if overall.TopScore == nil || *s.AvgJudgeScore > *overall.TopScore {
			top := *s.AvgJudgeScore
			overall.TopScore = &top
		}
	}
	if overall.TopScore == nil {
		overall.Winners = []ProjectAverage{}
		return overall
	}

	for _, s := range summaries {
		if s.AvgJudgeScore != nil && *s.AvgJudgeScore == *overall.TopScore {
			overall.Winners = append(overall.Winners, ProjectAverage{
				ProjectID:    s.ProjectID,
				ProjectName:  s.Name,
				AverageScore: *s.AvgJudgeScore,
			})
		}
	}
	return overall
}
