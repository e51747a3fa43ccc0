// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollview

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Robinson7070/alx-polly/models"
)

type fakePolls struct {
	poll models.Poll
	err  error
}

func (f *fakePolls) FetchPoll(ctx context.Context, pollID string) (models.Poll, error) {
	if f.err != nil {
		return models.Poll{}, f.err
	}
	return f.poll, nil
}

type fakeViewers struct {
	viewer *models.Viewer
	err    error
}

func (f *fakeViewers) FetchCurrentViewer(ctx context.Context) (*models.Viewer, error) {
	return f.viewer, f.err
}

type fakeVotes struct {
	mu      sync.Mutex
	calls   []int
	err     error
	release chan struct{}
}

func (f *fakeVotes) SubmitVote(ctx context.Context, pollID string, optionIndex int) error {
	f.mu.Lock()
	f.calls = append(f.calls, optionIndex)
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func (f *fakeVotes) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func samplePoll(votes []int, total int) models.Poll {
	return models.Poll{
		ID:         "poll-1",
		Question:   "A or B?",
		Options:    []string{"A", "B"},
		Votes:      votes,
		TotalVotes: total,
		CreatedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		OwnerID:    "owner",
	}
}

type harness struct {
	session *Session
	polls   *fakePolls
	viewers *fakeViewers
	votes   *fakeVotes
	notify  *recordingNotifier
}

func newHarness(t *testing.T, poll models.Poll, viewer *models.Viewer) *harness {
	t.Helper()
	h := &harness{
		polls:   &fakePolls{poll: poll},
		viewers: &fakeViewers{viewer: viewer},
		votes:   &fakeVotes{},
		notify:  &recordingNotifier{},
	}
	h.session = NewSession(Env{Polls: h.polls, Viewers: h.viewers, Votes: h.votes, Notify: h.notify})
	return h
}

func (h *harness) load(t *testing.T) {
	t.Helper()
	if err := h.session.Load(context.Background(), "poll-1"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestSessionPercentages(t *testing.T) {
	tests := []struct {
		name  string
		votes []int
		total int
		want  []int
	}{
		{"three to one", []int{3, 1}, 4, []int{75, 25}},
		{"no votes", []int{0, 0}, 0, []int{0, 0}},
		{"zero total with stray counts", []int{2, 5}, 0, []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, samplePoll(tt.votes, tt.total), nil)
			h.load(t)
			for i, want := range tt.want {
				if got := h.session.PercentageOf(i); got != want {
					t.Errorf("PercentageOf(%d) = %d, want %d", i, got, want)
				}
			}
			if got := h.session.PercentageOf(7); got != 0 {
				t.Errorf("PercentageOf(out of range) = %d, want 0", got)
			}
			if got := h.session.PercentageOf(-1); got != 0 {
				t.Errorf("PercentageOf(-1) = %d, want 0", got)
			}
		})
	}
}

func TestSessionResults(t *testing.T) {
	h := newHarness(t, samplePoll([]int{3, 1}, 4), nil)
	h.load(t)

	res := h.session.Results()
	if len(res) != 2 {
		t.Fatalf("len(Results()) = %d", len(res))
	}
	if res[0] != (OptionResult{Label: "A", Votes: 3, Percent: 75}) {
		t.Errorf("Results()[0] = %+v", res[0])
	}
	if res[1] != (OptionResult{Label: "B", Votes: 1, Percent: 25}) {
		t.Errorf("Results()[1] = %+v", res[1])
	}
}

func TestSessionIsOwner(t *testing.T) {
	tests := []struct {
		name      string
		viewer    *models.Viewer
		viewerErr error
		want      bool
	}{
		{"owner", &models.Viewer{ID: "owner"}, nil, true},
		{"someone else", &models.Viewer{ID: "other"}, nil, false},
		{"anonymous", nil, nil, false},
		{"viewer lookup fails", nil, errors.New("boom"), false},
		{"malformed viewer", &models.Viewer{Name: "no id"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, samplePoll([]int{0, 0}, 0), tt.viewer)
			h.viewers.err = tt.viewerErr
			h.load(t)
			if got := h.session.IsOwner(); got != tt.want {
				t.Errorf("IsOwner() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionIsOwnerFollowsReload(t *testing.T) {
	h := newHarness(t, samplePoll([]int{0, 0}, 0), &models.Viewer{ID: "owner"})
	h.load(t)
	if !h.session.IsOwner() {
		t.Fatal("expected owner")
	}

	h.viewers.viewer = nil
	h.load(t)
	if h.session.IsOwner() {
		t.Error("IsOwner() stayed true after viewer signed out")
	}

	h.viewers.viewer = &models.Viewer{ID: "owner"}
	p := samplePoll([]int{0, 0}, 0)
	p.OwnerID = "new-owner"
	h.polls.poll = p
	h.load(t)
	if h.session.IsOwner() {
		t.Error("IsOwner() stayed true after ownership changed")
	}
}

func TestSessionUnloaded(t *testing.T) {
	h := newHarness(t, samplePoll([]int{1, 1}, 2), &models.Viewer{ID: "owner"})

	if st, _ := h.session.Status(); st != Unloaded {
		t.Errorf("Status() = %v, want unloaded", st)
	}
	if h.session.IsOwner() {
		t.Error("IsOwner() true before load")
	}
	if _, ok := h.session.Poll(); ok {
		t.Error("Poll() ok before load")
	}
	if err := h.session.Select(0); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Select() error = %v, want ErrNotLoaded", err)
	}
	if _, err := h.session.Submit(context.Background()); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Submit() error = %v, want ErrNotLoaded", err)
	}
	if h.votes.callCount() != 0 {
		t.Error("vote submitter called before load")
	}
}

func TestSessionLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		poll    models.Poll
		err     error
		wantErr error
	}{
		{"not found", models.Poll{}, models.ErrPollNotFound, models.ErrPollNotFound},
		{"malformed", models.Poll{ID: "poll-1", Options: []string{"A", "B"}, Votes: []int{1}}, nil, models.ErrMalformedSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.poll, nil)
			h.polls.err = tt.err

			err := h.session.Load(context.Background(), "poll-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
			}
			st, cause := h.session.Status()
			if st != LoadFailed {
				t.Errorf("Status() = %v, want load_failed", st)
			}
			if !errors.Is(cause, tt.wantErr) {
				t.Errorf("Status() cause = %v", cause)
			}
			if _, ok := h.session.Poll(); ok {
				t.Error("Poll() ok after failed load")
			}
		})
	}
}

func TestSessionLoadRetry(t *testing.T) {
	h := newHarness(t, samplePoll([]int{1, 0}, 1), nil)
	h.polls.err = errors.New("connection refused")

	if err := h.session.Load(context.Background(), "poll-1"); err == nil {
		t.Fatal("expected error")
	}

	h.polls.err = nil
	h.load(t)
	if st, err := h.session.Status(); st != Loaded || err != nil {
		t.Errorf("Status() = %v, %v after retry", st, err)
	}
}

func TestSessionPollIsCopy(t *testing.T) {
	h := newHarness(t, samplePoll([]int{3, 1}, 4), nil)
	h.load(t)

	p, _ := h.session.Poll()
	p.Votes[0] = 99
	p.Options[0] = "mutated"

	again, _ := h.session.Poll()
	if again.Votes[0] != 3 || again.Options[0] != "A" {
		t.Errorf("snapshot mutated through Poll(): %+v", again)
	}
}

func TestSessionSubmitWithoutSelection(t *testing.T) {
	h := newHarness(t, samplePoll([]int{0, 0}, 0), nil)
	h.load(t)

	st, err := h.session.Submit(context.Background())
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("Submit() error = %v, want ErrNoSelection", err)
	}
	if st.Phase != AwaitingSelection || st.HasSelection() {
		t.Errorf("state = %+v", st)
	}
	if h.votes.callCount() != 0 {
		t.Error("vote submitter called without a selection")
	}
	if len(h.notify.successes)+len(h.notify.errors) != 0 {
		t.Error("notification sent for a no-op submit")
	}
}

func TestSessionSubmitSuccess(t *testing.T) {
	h := newHarness(t, samplePoll([]int{3, 1}, 4), nil)
	h.load(t)

	if err := h.session.Select(1); err != nil {
		t.Fatal(err)
	}
	st, err := h.session.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if st.Phase != Voted {
		t.Errorf("phase = %v, want voted", st.Phase)
	}
	if len(h.votes.calls) != 1 || h.votes.calls[0] != 1 {
		t.Errorf("submitter calls = %v, want [1]", h.votes.calls)
	}
	if len(h.notify.successes) != 1 || h.notify.successes[0] != SuccessMessage {
		t.Errorf("success notifications = %v", h.notify.successes)
	}

	// counts come from the next snapshot, not from local increments
	if got := h.session.PercentageOf(1); got != 25 {
		t.Errorf("PercentageOf(1) = %d, want 25 until reload", got)
	}

	if _, err := h.session.Submit(context.Background()); !errors.Is(err, ErrVoted) {
		t.Errorf("second Submit() error = %v, want ErrVoted", err)
	}
	if h.votes.callCount() != 1 {
		t.Errorf("submitter called %d times", h.votes.callCount())
	}
}

func TestSessionSubmitRejected(t *testing.T) {
	h := newHarness(t, samplePoll([]int{3, 1}, 4), nil)
	h.load(t)
	h.votes.err = errors.New("Already voted")

	h.session.Select(0)
	st, err := h.session.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if st != (State{Phase: AwaitingSelection, Selection: 0}) {
		t.Errorf("state = %+v, want awaiting selection of 0", st)
	}
	if len(h.notify.errors) != 1 || h.notify.errors[0] != "Already voted" {
		t.Errorf("error notifications = %v", h.notify.errors)
	}
	if len(h.notify.successes) != 0 {
		t.Errorf("unexpected success notification")
	}

	// retry is a single submit
	h.votes.err = nil
	st, err = h.session.Submit(context.Background())
	if err != nil || st.Phase != Voted {
		t.Errorf("retry = %+v, %v", st, err)
	}
	if got := h.votes.calls; len(got) != 2 || got[1] != 0 {
		t.Errorf("submitter calls = %v", got)
	}
}

func TestSessionSingleSubmissionInFlight(t *testing.T) {
	h := newHarness(t, samplePoll([]int{0, 0}, 0), nil)
	h.load(t)
	h.votes.release = make(chan struct{})
	h.session.Select(1)

	done := make(chan State)
	go func() {
		st, _ := h.session.Submit(context.Background())
		done <- st
	}()

	for h.votes.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	if got := h.session.State(); got.Phase != Submitting || got.Selection != 1 {
		t.Errorf("state while in flight = %+v", got)
	}

	var rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.session.Submit(context.Background()); errors.Is(err, ErrSubmissionInFlight) {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()
	if rejected.Load() != 8 {
		t.Errorf("rejected %d concurrent submits, want 8", rejected.Load())
	}
	if err := h.session.Select(0); !errors.Is(err, ErrSelectionLocked) {
		t.Errorf("Select() while submitting error = %v", err)
	}

	close(h.votes.release)
	if st := <-done; st.Phase != Voted {
		t.Errorf("final phase = %v", st.Phase)
	}
	if h.votes.callCount() != 1 {
		t.Errorf("submitter called %d times, want 1", h.votes.callCount())
	}
}

func TestSessionCancelledContextStillSubmits(t *testing.T) {
	h := newHarness(t, samplePoll([]int{0, 0}, 0), nil)
	h.load(t)
	h.session.Select(0)

	var seen error
	h.session.env.Votes = submitFunc(func(ctx context.Context, pollID string, optionIndex int) error {
		seen = ctx.Err()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st, err := h.session.Submit(ctx)
	if err != nil || st.Phase != Voted {
		t.Fatalf("Submit() = %+v, %v", st, err)
	}
	if seen != nil {
		t.Errorf("submitter saw cancelled context: %v", seen)
	}
}

func TestSessionReloadKeepsFlow(t *testing.T) {
	h := newHarness(t, samplePoll([]int{3, 1}, 4), nil)
	h.load(t)
	h.session.Select(1)
	h.session.Submit(context.Background())

	h.polls.poll = samplePoll([]int{3, 2}, 5)
	h.load(t)

	if h.session.State().Phase != Voted {
		t.Errorf("reload reset the flow: %+v", h.session.State())
	}
	if got := h.session.PercentageOf(1); got != 40 {
		t.Errorf("PercentageOf(1) after reload = %d, want 40", got)
	}
}

func TestSessionNilNotifier(t *testing.T) {
	s := NewSession(Env{
		Polls: &fakePolls{poll: samplePoll([]int{0, 0}, 0)},
		Votes: &fakeVotes{err: errors.New("nope")},
	})
	if err := s.Load(context.Background(), "poll-1"); err != nil {
		t.Fatal(err)
	}
	s.Select(0)
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if s.Viewer() != nil {
		t.Error("expected anonymous viewer without a ViewerFetcher")
	}
}

type submitFunc func(ctx context.Context, pollID string, optionIndex int) error

func (f submitFunc) SubmitVote(ctx context.Context, pollID string, optionIndex int) error {
	return f(ctx, pollID, optionIndex)
}

func TestSessionLoadOtherPollWhileSubmitting(t *testing.T) {
	h := newHarness(t, samplePoll([]int{0, 0}, 0), nil)
	h.load(t)
	h.votes.release = make(chan struct{})
	h.session.Select(0)

	done := make(chan State)
	go func() {
		st, _ := h.session.Submit(context.Background())
		done <- st
	}()
	for h.votes.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	if err := h.session.Load(context.Background(), "poll-2"); !errors.Is(err, ErrSubmissionInFlight) {
		t.Errorf("Load(other poll) while submitting error = %v, want ErrSubmissionInFlight", err)
	}
	if got := h.session.PollID(); got != "poll-1" {
		t.Errorf("PollID() = %q, want poll-1", got)
	}
	if status, err := h.session.Status(); status != Loaded || err != nil {
		t.Errorf("Status() = %v, %v; want Loaded", status, err)
	}

	close(h.votes.release)
	if st := <-done; st.Phase != Voted {
		t.Errorf("final phase = %v, want Voted", st.Phase)
	}
	h.notify.mu.Lock()
	defer h.notify.mu.Unlock()
	if len(h.notify.successes) != 1 || h.notify.successes[0] != SuccessMessage {
		t.Errorf("successes = %v, want the vote outcome notified", h.notify.successes)
	}
}

func TestSessionReloadSamePollWhileSubmitting(t *testing.T) {
	h := newHarness(t, samplePoll([]int{0, 0}, 0), nil)
	h.load(t)
	h.votes.release = make(chan struct{})
	h.session.Select(1)

	done := make(chan State)
	go func() {
		st, _ := h.session.Submit(context.Background())
		done <- st
	}()
	for h.votes.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	h.load(t)
	if got := h.session.State(); got.Phase != Submitting || got.Selection != 1 {
		t.Errorf("State() after same-poll reload = %+v, want Submitting(1)", got)
	}

	close(h.votes.release)
	if st := <-done; st.Phase != Voted {
		t.Errorf("final phase = %v, want Voted", st.Phase)
	}
}
