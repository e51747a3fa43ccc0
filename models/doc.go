// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types shared by the
server, the HTTP client, and the poll view.

# Request Types

  - RegisterUserRequest: name
  - CreatePollRequest: question, options
  - SubmitVoteRequest: option_index

# Response Types

  - RegisterUserResponse: user_id, name, token
  - SubmitVoteResponse: message
  - ErrorResponse: error, message

# Domain Types

  - Poll: question, ordered options and index-aligned vote counts
  - Viewer: identity of whoever is looking at a poll (nil when anonymous)
  - User: registered account backing a Viewer

# Snapshot Validation

Snapshots arriving from another process are checked before use:

	if err := poll.Validate(); err != nil {
		// errors.Is(err, models.ErrMalformedSnapshot)
	}

# Errors

Sentinel errors shared across packages:

	ErrPollNotFound      - unknown poll id
	ErrMalformedSnapshot - snapshot failed validation
	ErrInvalidOption     - option index out of range
	ErrAlreadyVoted      - voter already has a ballot on the poll
	ErrNotOwner          - requester does not own the poll
*/
package models
