// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollview

import (
	"context"

	"github.com/Robinson7070/alx-polly/models"
)

// PollFetcher loads a poll snapshot. Unknown ids fail with models.ErrPollNotFound.
type PollFetcher interface {
	FetchPoll(ctx context.Context, pollID string) (models.Poll, error)
}

// ViewerFetcher returns the current viewer, or nil for an anonymous viewer.
type ViewerFetcher interface {
	FetchCurrentViewer(ctx context.Context) (*models.Viewer, error)
}

// VoteSubmitter records a vote. A non-nil error is a rejection whose text is
// shown to the viewer as is.
type VoteSubmitter interface {
	SubmitVote(ctx context.Context, pollID string, optionIndex int) error
}

// Notifier delivers transient messages to the viewer.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Env bundles the collaborators a Session talks to. Viewers and Notify may be
// nil; Polls and Votes are required.
type Env struct {
	Polls   PollFetcher
	Viewers ViewerFetcher
	Votes   VoteSubmitter
	Notify  Notifier
}

type discardNotifier struct{}

func (discardNotifier) Success(string) {}
func (discardNotifier) Error(string)   {}
