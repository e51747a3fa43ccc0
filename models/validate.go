// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"strings"
)

// MinOptions is the smallest number of options a poll can carry.
const MinOptions = 2

// Validate checks the shape of a poll snapshot received from a collaborator.
// TotalVotes is trusted as supplied and is not reconciled against Votes.
func (p Poll) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: poll id is empty", ErrMalformedSnapshot)
	}
	if len(p.Options) < MinOptions {
		return fmt.Errorf("%w: poll %s has %d options", ErrMalformedSnapshot, p.ID, len(p.Options))
	}
	if len(p.Votes) != len(p.Options) {
		return fmt.Errorf("%w: poll %s has %d vote counts for %d options",
			ErrMalformedSnapshot, p.ID, len(p.Votes), len(p.Options))
	}
	for i, v := range p.Votes {
		if v < 0 {
			return fmt.Errorf("%w: poll %s option %d has negative count", ErrMalformedSnapshot, p.ID, i)
		}
	}
	if p.TotalVotes < 0 {
		return fmt.Errorf("%w: poll %s has negative total", ErrMalformedSnapshot, p.ID)
	}
	return nil
}

// Validate checks a viewer identity received from a collaborator.
func (v Viewer) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("%w: viewer id is empty", ErrMalformedSnapshot)
	}
	return nil
}

// Normalize trims the question and option labels and checks the request.
func (r CreatePollRequest) Normalize() (CreatePollRequest, error) {
	out := CreatePollRequest{Question: strings.TrimSpace(r.Question)}
	if out.Question == "" {
		return out, fmt.Errorf("%w: question is required", ErrInvalidPollRequest)
	}
	for _, opt := range r.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		out.Options = append(out.Options, opt)
	}
	if len(out.Options) < MinOptions {
		return out, fmt.Errorf("%w: at least %d options required", ErrInvalidPollRequest, MinOptions)
	}
	return out, nil
}
