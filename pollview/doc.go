// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pollview holds the state behind a single poll page: the loaded
snapshot, the viewer's selection, and the vote flow that turns a selection
into a recorded vote and then into results.

# Session

A Session is built from an explicit Env of collaborators:

	s := pollview.NewSession(pollview.Env{
		Polls:   api,
		Viewers: api,
		Votes:   api,
		Notify:  toaster,
	})
	if err := s.Load(ctx, pollID); err != nil {
		// s.Status() reports LoadFailed; Load may be called again to retry
	}

The poll and the viewer are fetched concurrently. A viewer lookup never fails
the load; it degrades to an anonymous viewer.

# Vote Flow

	AwaitingSelection(none) --select(i)--> AwaitingSelection(i)
	AwaitingSelection(i)    --submit-->    Submitting(i)
	Submitting(i)           --accepted-->  Voted
	Submitting(i)           --rejected-->  AwaitingSelection(i)

Submitting without a selection returns ErrNoSelection and calls nothing. A
second submit while one is in flight returns ErrSubmissionInFlight. Voted is
terminal for the session. Counts are never incremented locally; reload the
session to see the server's tallies.

Event loops that run the network call on their own schedule split Submit
into BeginSubmit, SendVote and ResolveSubmit.

# Results

Percentages round halves up:

	pollview.Percentage(3, 4) // 75
	pollview.Percentage(1, 8) // 13
	pollview.Percentage(5, 0) // 0
*/
package pollview
