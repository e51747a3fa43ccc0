// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Robinson7070/alx-polly/models"
)

// DefaultTimeout bounds each request when New is given no timeout.
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response. Error returns the server's message so it
// can be shown to the viewer unchanged.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// Client talks to the alx-polly API. It satisfies pollview.PollFetcher,
// pollview.ViewerFetcher and pollview.VoteSubmitter.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// SignedIn reports whether requests carry a bearer token.
func (c *Client) SignedIn() bool {
	return c.token != ""
}

// ShareURL is the public address of a poll.
func (c *Client) ShareURL(pollID string) string {
	return c.baseURL + "/polls/" + url.PathEscape(pollID)
}

func (c *Client) FetchPoll(ctx context.Context, pollID string) (models.Poll, error) {
	var poll models.Poll
	err := c.do(ctx, http.MethodGet, "/polls/"+url.PathEscape(pollID), nil, &poll)
	if err != nil {
		return models.Poll{}, err
	}
	return poll, nil
}

// FetchCurrentViewer returns nil without a request when no token is set.
func (c *Client) FetchCurrentViewer(ctx context.Context) (*models.Viewer, error) {
	if !c.SignedIn() {
		return nil, nil
	}
	var viewer *models.Viewer
	if err := c.do(ctx, http.MethodGet, "/me", nil, &viewer); err != nil {
		return nil, err
	}
	return viewer, nil
}

func (c *Client) SubmitVote(ctx context.Context, pollID string, optionIndex int) error {
	req := models.SubmitVoteRequest{OptionIndex: &optionIndex}
	var resp models.SubmitVoteResponse
	return c.do(ctx, http.MethodPost, "/polls/"+url.PathEscape(pollID)+"/votes", req, &resp)
}

func (c *Client) Register(ctx context.Context, name string) (models.RegisterUserResponse, error) {
	var resp models.RegisterUserResponse
	err := c.do(ctx, http.MethodPost, "/users", models.RegisterUserRequest{Name: name}, &resp)
	return resp, err
}

func (c *Client) CreatePoll(ctx context.Context, question string, options []string) (models.Poll, error) {
	var poll models.Poll
	err := c.do(ctx, http.MethodPost, "/polls", models.CreatePollRequest{Question: question, Options: options}, &poll)
	return poll, err
}

func (c *Client) ListPolls(ctx context.Context) ([]models.Poll, error) {
	var polls []models.Poll
	err := c.do(ctx, http.MethodGet, "/polls", nil, &polls)
	return polls, err
}

func (c *Client) DeletePoll(ctx context.Context, pollID string) error {
	return c.do(ctx, http.MethodDelete, "/polls/"+url.PathEscape(pollID), nil, nil)
}

// do sends one request and decodes a 2xx body into out. A 404 reading or
// deleting a poll is reported as models.ErrPollNotFound; a body that does not
// decode is models.ErrMalformedSnapshot. Other failures are *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	slog.Debug("api response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Message = errBody.Message
		}
		if resp.StatusCode == http.StatusNotFound && method != http.MethodPost && strings.HasPrefix(path, "/polls/") {
			return models.ErrPollNotFound
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", models.ErrMalformedSnapshot, err)
	}
	return nil
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
