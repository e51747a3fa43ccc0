// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Robinson7070/alx-polly/client"
	"github.com/Robinson7070/alx-polly/models"
	"github.com/Robinson7070/alx-polly/pollview"
	"github.com/Robinson7070/alx-polly/router"
	"github.com/Robinson7070/alx-polly/store"
	"github.com/Robinson7070/alx-polly/testutil"
)

var (
	_ pollview.PollFetcher   = (*client.Client)(nil)
	_ pollview.ViewerFetcher = (*client.Client)(nil)
	_ pollview.VoteSubmitter = (*client.Client)(nil)
)

// newServer runs the real router over a fresh SQLite store.
func newServer(t *testing.T) (*httptest.Server, *store.SQLStore) {
	t.Helper()
	st := testutil.SetupTestStore(t)
	srv := httptest.NewServer(router.NewRouter(st, testutil.GetTestConfig()))
	t.Cleanup(srv.Close)
	return srv, st
}

func TestClient_RoundTrip(t *testing.T) {
	srv, _ := newServer(t)
	ctx := context.Background()

	anon := client.New(srv.URL, "", time.Second)
	reg, err := anon.Register(ctx, "alice")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	c := client.New(srv.URL+"/", reg.Token, time.Second)

	viewer, err := c.FetchCurrentViewer(ctx)
	if err != nil {
		t.Fatalf("FetchCurrentViewer: %v", err)
	}
	if viewer == nil || viewer.ID != reg.UserID {
		t.Fatalf("Expected viewer %s, got %+v", reg.UserID, viewer)
	}

	poll, err := c.CreatePoll(ctx, "Tabs or spaces?", []string{"Tabs", "Spaces"})
	if err != nil {
		t.Fatalf("CreatePoll: %v", err)
	}

	if err := c.SubmitVote(ctx, poll.ID, 1); err != nil {
		t.Fatalf("SubmitVote: %v", err)
	}

	err = c.SubmitVote(ctx, poll.ID, 0)
	if err == nil || err.Error() != "Already voted" {
		t.Errorf("Expected 'Already voted', got %v", err)
	}
	if !client.IsStatus(err, http.StatusConflict) {
		t.Errorf("Expected 409 APIError, got %v", err)
	}

	got, err := c.FetchPoll(ctx, poll.ID)
	if err != nil {
		t.Fatalf("FetchPoll: %v", err)
	}
	if got.TotalVotes != 1 || got.Votes[1] != 1 {
		t.Errorf("Expected one vote for Spaces, got %v", got.Votes)
	}

	polls, err := c.ListPolls(ctx)
	if err != nil {
		t.Fatalf("ListPolls: %v", err)
	}
	if len(polls) != 1 {
		t.Errorf("Expected 1 poll, got %d", len(polls))
	}

	if err := c.DeletePoll(ctx, poll.ID); err != nil {
		t.Fatalf("DeletePoll: %v", err)
	}
	if _, err := c.FetchPoll(ctx, poll.ID); !errors.Is(err, models.ErrPollNotFound) {
		t.Errorf("Expected ErrPollNotFound after delete, got %v", err)
	}
}

func TestClient_AnonymousViewerSkipsRequest(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	viewer, err := client.New(srv.URL, "", time.Second).FetchCurrentViewer(context.Background())
	if err != nil || viewer != nil {
		t.Errorf("Expected nil, nil; got %+v, %v", viewer, err)
	}
	if hits != 0 {
		t.Errorf("Expected no request, got %d", hits)
	}
}

func TestClient_UnknownTokenIsAnonymous(t *testing.T) {
	srv, _ := newServer(t)

	viewer, err := client.New(srv.URL, "stale", time.Second).FetchCurrentViewer(context.Background())
	if err != nil {
		t.Fatalf("FetchCurrentViewer: %v", err)
	}
	if viewer != nil {
		t.Errorf("Expected anonymous viewer, got %+v", viewer)
	}
}

func TestClient_VoteRejectionMessages(t *testing.T) {
	srv, st := newServer(t)
	owner := testutil.CreateTestUser(t, st, "alice")
	poll := testutil.CreateTestPoll(t, st, owner.ID)
	c := client.New(srv.URL, "", time.Second)

	testCases := []struct {
		name   string
		pollID string
		option int
		want   string
	}{
		{"invalid option", poll.ID, 5, "Invalid option"},
		{"unknown poll", "missing", 0, "Poll not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.SubmitVote(context.Background(), tc.pollID, tc.option)
			if err == nil || err.Error() != tc.want {
				t.Errorf("Expected '%s', got %v", tc.want, err)
			}
		})
	}
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 42`))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL, "", time.Second).FetchPoll(context.Background(), "p1")
	if !errors.Is(err, models.ErrMalformedSnapshot) {
		t.Errorf("Expected ErrMalformedSnapshot, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := client.New(srv.URL, "", 50*time.Millisecond).FetchPoll(context.Background(), "p1")
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if errors.Is(err, models.ErrPollNotFound) || errors.Is(err, models.ErrMalformedSnapshot) {
		t.Errorf("Expected a transport error, got %v", err)
	}
}

func TestClient_ShareURL(t *testing.T) {
	c := client.New("http://polly.example/", "", 0)
	if got := c.ShareURL("abc"); got != "http://polly.example/polls/abc" {
		t.Errorf("Unexpected share URL %s", got)
	}
}

func TestClient_DrivesSession(t *testing.T) {
	srv, st := newServer(t)
	owner := testutil.CreateTestUser(t, st, "alice")
	poll := testutil.CreateTestPoll(t, st, owner.ID, "Red", "Blue")

	c := client.New(srv.URL, owner.Token, time.Second)
	session := pollview.NewSession(pollview.Env{Polls: c, Viewers: c, Votes: c})

	ctx := context.Background()
	if err := session.Load(ctx, poll.ID); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !session.IsOwner() {
		t.Error("Expected owner to be recognised")
	}
	if err := session.Select(0); err != nil {
		t.Fatalf("Select: %v", err)
	}
	state, err := session.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if state.Phase != pollview.Voted {
		t.Fatalf("Expected Voted, got %v", state.Phase)
	}

	if err := session.Load(ctx, poll.ID); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := session.PercentageOf(0); got != 100 {
		t.Errorf("Expected 100%% for Red after reload, got %d", got)
	}
}
