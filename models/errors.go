// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

var (
	ErrPollNotFound       = errors.New("poll not found")
	ErrMalformedSnapshot  = errors.New("malformed snapshot")
	ErrInvalidOption      = errors.New("invalid option")
	ErrAlreadyVoted       = errors.New("already voted")
	ErrNotOwner           = errors.New("not the poll owner")
	ErrInvalidPollRequest = errors.New("invalid poll request")
)
