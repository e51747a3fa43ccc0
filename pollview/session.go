// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Robinson7070/alx-polly/models"
)

// SuccessMessage is the notification sent when a vote is accepted.
const SuccessMessage = "Vote submitted successfully!"

// LoadStatus tracks the snapshot held by a Session.
type LoadStatus int

const (
	Unloaded LoadStatus = iota
	Loading
	Loaded
	LoadFailed
)

func (s LoadStatus) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "load_failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

var ErrNotLoaded = errors.New("poll is not loaded")

// Session owns the poll and viewer snapshot for one visit to a poll and drives
// the vote flow against it. Methods are safe for concurrent use; at most one
// vote submission is in flight at a time.
type Session struct {
	env Env

	mu      sync.Mutex
	pollID  string
	status  LoadStatus
	loadErr error
	poll    models.Poll
	viewer  *models.Viewer
	flow    *Flow
}

// NewSession returns an unloaded session wired to env.
func NewSession(env Env) *Session {
	if env.Notify == nil {
		env.Notify = discardNotifier{}
	}
	return &Session{env: env}
}

// Load fetches the poll and the current viewer concurrently and replaces the
// snapshot. On failure the session reports LoadFailed and keeps the error;
// calling Load again retries. Reloading the same poll keeps the vote flow.
// Loading a different poll while a vote is in flight returns
// ErrSubmissionInFlight and leaves the session unchanged.
func (s *Session) Load(ctx context.Context, pollID string) error {
	s.mu.Lock()
	if s.switchBlocked(pollID) {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	prevStatus, prevErr := s.status, s.loadErr
	s.status = Loading
	s.mu.Unlock()

	var (
		poll   models.Poll
		viewer *models.Viewer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.env.Polls.FetchPoll(gctx, pollID)
		if err != nil {
			return fmt.Errorf("fetch poll %s: %w", pollID, err)
		}
		if err := p.Validate(); err != nil {
			return err
		}
		poll = p
		return nil
	})
	g.Go(func() error {
		viewer = s.fetchViewer(gctx)
		return nil
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	// a submission may have started while fetching
	if s.switchBlocked(pollID) {
		s.status, s.loadErr = prevStatus, prevErr
		return ErrSubmissionInFlight
	}

	if err != nil {
		slog.Warn("poll load failed", "poll_id", pollID, "error", err)
		s.status = LoadFailed
		s.loadErr = err
		return err
	}

	if s.flow == nil || s.pollID != pollID {
		s.flow = NewFlow(len(poll.Options))
	} else {
		s.flow.Reconcile(len(poll.Options))
	}
	s.pollID = pollID
	s.poll = poll
	s.viewer = viewer
	s.status = Loaded
	s.loadErr = nil

	slog.Debug("poll loaded", "poll_id", pollID, "total_votes", poll.TotalVotes, "anonymous", viewer == nil)
	return nil
}

// switchBlocked reports whether loading pollID would drop the flow of a
// submission still in flight. Callers hold s.mu.
func (s *Session) switchBlocked(pollID string) bool {
	return s.flow != nil && s.pollID != pollID && s.flow.State().Phase == Submitting
}

// fetchViewer never fails: lookup errors and malformed identities degrade to
// an anonymous viewer.
func (s *Session) fetchViewer(ctx context.Context) *models.Viewer {
	if s.env.Viewers == nil {
		return nil
	}
	v, err := s.env.Viewers.FetchCurrentViewer(ctx)
	if err != nil {
		slog.Warn("viewer lookup failed, continuing anonymously", "error", err)
		return nil
	}
	if v == nil {
		return nil
	}
	if err := v.Validate(); err != nil {
		slog.Warn("ignoring viewer", "error", err)
		return nil
	}
	return v
}

// Status returns the load status and, for LoadFailed, the cause.
func (s *Session) Status() (LoadStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.loadErr
}

// PollID returns the id of the loaded poll.
func (s *Session) PollID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pollID
}

// Poll returns a copy of the poll snapshot. ok is false until a load succeeds.
func (s *Session) Poll() (poll models.Poll, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil {
		return models.Poll{}, false
	}
	p := s.poll
	p.Options = slices.Clone(p.Options)
	p.Votes = slices.Clone(p.Votes)
	return p, true
}

// Viewer returns a copy of the current viewer, nil when anonymous.
func (s *Session) Viewer() *models.Viewer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewer == nil {
		return nil
	}
	v := *s.viewer
	return &v
}

// IsOwner reports whether the current viewer created the poll.
func (s *Session) IsOwner() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow != nil && s.viewer != nil && s.viewer.ID == s.poll.OwnerID
}

// PercentageOf returns the share of votes held by an option, 0 for an
// unknown option or an unloaded session.
func (s *Session) PercentageOf(optionIndex int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if optionIndex < 0 || optionIndex >= len(s.poll.Votes) {
		return 0
	}
	return Percentage(s.poll.Votes[optionIndex], s.poll.TotalVotes)
}

// Results returns one row per option in display order.
func (s *Session) Results() []OptionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]OptionResult, len(s.poll.Options))
	for i, label := range s.poll.Options {
		out[i] = OptionResult{
			Label:   label,
			Votes:   s.poll.Votes[i],
			Percent: Percentage(s.poll.Votes[i], s.poll.TotalVotes),
		}
	}
	return out
}

// State returns the vote flow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil {
		return State{Phase: AwaitingSelection, Selection: NoSelection}
	}
	return s.flow.State()
}

// Select changes the selected option.
func (s *Session) Select(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil {
		return ErrNotLoaded
	}
	return s.flow.Select(optionIndex)
}

// BeginSubmit enters Submitting and returns the option to send. Callers that
// run the network call themselves pair it with SendVote and ResolveSubmit.
func (s *Session) BeginSubmit() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil {
		return NoSelection, ErrNotLoaded
	}
	return s.flow.BeginSubmit()
}

// SendVote calls the vote submitter once. Cancelling ctx does not abort a
// submission that has started.
func (s *Session) SendVote(ctx context.Context, optionIndex int) error {
	pollID := s.PollID()
	slog.Info("submitting vote", "poll_id", pollID, "option", optionIndex)
	return s.env.Votes.SubmitVote(context.WithoutCancel(ctx), pollID, optionIndex)
}

// ResolveSubmit applies the outcome of SendVote and notifies the viewer.
func (s *Session) ResolveSubmit(result error) error {
	s.mu.Lock()
	if s.flow == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	pollID := s.pollID
	var err error
	if result == nil {
		err = s.flow.Succeed()
	} else {
		err = s.flow.Fail()
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if result != nil {
		slog.Info("vote rejected", "poll_id", pollID, "reason", result.Error())
		s.env.Notify.Error(result.Error())
		return nil
	}
	slog.Info("vote accepted", "poll_id", pollID)
	s.env.Notify.Success(SuccessMessage)
	return nil
}

// Submit runs a whole submission: begin, send, resolve. The returned error
// covers rejected submit events only; a rejected vote is reported through the
// notifier and leaves the flow awaiting a selection.
func (s *Session) Submit(ctx context.Context) (State, error) {
	idx, err := s.BeginSubmit()
	if err != nil {
		return s.State(), err
	}
	if err := s.ResolveSubmit(s.SendVote(ctx, idx)); err != nil {
		return s.State(), err
	}
	return s.State(), nil
}
