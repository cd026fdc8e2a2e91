// Copyright (c) 2026 Evan Bronson.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package status is the temporal lifecycle and eligibility engine.

Every function here is pure: the caller supplies the hackathon record
and the current instant, and gets back a derived state or decision. No
I/O, no logging, no hidden clock reads.

# Lifecycle

Compute derives one of seven states, first match wins:

	archived       admin-archived; results visible, everything closed
	concluded      admin-concluded; results visible, everything closed
	review-period  between vote expiration and review end; results hidden
	upcoming       before start_time
	active         submissions and voting open
	ended          submissions closed, popular voting still open
	vote_expired   results visible unless a review period is still running

All comparisons happen in US Eastern wall-clock time (see clock.go).
The default vote expiration is end_time + 7 days.

# Eligibility

CanVoteOnProject and CanEditProject gate popular voting and project
edits; CheckJudgeCode gates judge score submission. Denials carry the
fixed reason vocabulary from the models package.
*/
package status
