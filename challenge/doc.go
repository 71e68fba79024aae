// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package challenge implements the photo challenge lifecycle and voting engine.

It is deliberately headless: every operation takes *sql.DB plus an explicit
"now", so the engine can be exercised without HTTP, sessions, or a real clock.

# Lifecycle

A challenge moves through four statuses driven by three timestamps:

	upcoming → active → voting → completed
	          start     end      voting_end

ResolveStatus derives the status for a given instant; EffectiveStatus layers
the admin override on top (an overridden challenge keeps its pinned status).
Reconcile sweeps all non-overridden challenges and persists any status that
drifted with elapsed time. It is idempotent - running it twice with no elapsed
time writes nothing the second time - and callers run it before any listing or
management view renders. Stored status may be stale between sweeps; anything
that must be exact (entry submission, voting) resolves fresh instead.

# Override semantics

An administrator may pin any status via Update without date validation. The
pin persists - reconciliation skips pinned challenges - until one of the three
dates is edited, which revalidates the ordering, clears the pin, and returns
the challenge to automatic resolution. (The alternative, transient overrides
silently discarded by the next sweep, was rejected as a foot-gun.)

# Operations

	c, err := challenge.Create(db, now, req)
	c, err = challenge.Update(db, now, c.ID, patch)
	e, err := challenge.SubmitEntry(db, now, c.ID, userID, entryReq, audit)
	v, err := challenge.CastVote(db, now, e.ID, voterID)
	ranked, err := challenge.RankEntries(db, c.ID)
	err = challenge.DeleteEntry(db, e.ID)

# Invariants

  - one entry per (challenge, user); entries only while effectively active
  - one vote per (entry, voter); votes only while effectively voting
  - no self-votes, rejected before the phase check
  - rankings: vote count desc, created_at asc, id asc - stable across calls
    within the same snapshot of data

Uniqueness is enforced by database constraints, so two concurrent requests
racing on the same submission or vote resolve to exactly one winner; the
loser receives ErrConflict.

# Errors

Operations fail with the sentinels ErrNotFound, ErrConflict, ErrInvalidState,
ErrForbidden (match with errors.Is) or a *ValidationError (match with
AsValidation / errors.As).
*/
package challenge
