// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring aggregates raw judge category votes into rankings.

All functions are pure: handlers pull rows and feed them in, nothing
here touches the database.

# Weighted Averages

A project's judge score is the weighted average of its per-category
means:

	Σ(category mean × category weight) / Σ(category weight)

rounded to 2 decimal places. A project with no category votes reports
nil for avg/min/max, never zero, and sorts after every scored project.

# Winners

CategoryWinners ranks projects within each rubric category by their
unweighted mean and returns every project tied at the maximum.
OverallWinner does the same over weighted averages. The asymmetry
(unweighted per category, weighted overall) mirrors how category awards
and the grand prize are judged. Do not unify them.
*/
package scoring
