// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/Robinson7070/alx-polly/models"
)

// Store persists users, polls and votes.
type Store interface {
	CreateUser(ctx context.Context, name string) (models.User, error)
	// UserByToken returns nil, nil for an unknown token.
	UserByToken(ctx context.Context, token string) (*models.User, error)

	CreatePoll(ctx context.Context, ownerID, question string, options []string) (models.Poll, error)
	GetPoll(ctx context.Context, pollID string) (models.Poll, error)
	ListPolls(ctx context.Context) ([]models.Poll, error)
	// CastVote records one vote per voterKey per poll.
	CastVote(ctx context.Context, pollID, voterKey string, optionIndex int) error
	DeletePoll(ctx context.Context, pollID, requesterID string) error

	Close() error
}
