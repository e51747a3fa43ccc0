// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Robinson7070/alx-polly/auth"
	"github.com/Robinson7070/alx-polly/models"
)

// SQLStore keeps data in SQLite or PostgreSQL. Queries use $N placeholders,
// which both drivers accept.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) CreateUser(ctx context.Context, name string) (models.User, error) {
	token, err := auth.GenerateToken()
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_user (id, name, token, created_at)
		VALUES ($1, $2, $3, $4)
	`, user.ID, user.Name, user.Token, user.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

func (s *SQLStore) UserByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, token, created_at FROM app_user WHERE token = $1
	`, token).Scan(&user.ID, &user.Name, &user.Token, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

func (s *SQLStore) CreatePoll(ctx context.Context, ownerID, question string, options []string) (models.Poll, error) {
	poll := models.Poll{
		ID:        uuid.NewString(),
		Question:  question,
		Options:   options,
		Votes:     make([]int, len(options)),
		CreatedAt: time.Now().UTC(),
		OwnerID:   ownerID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, question, owner_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, poll.ID, poll.Question, poll.OwnerID, poll.CreatedAt)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to insert poll: %w", err)
	}

	for i, label := range options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (poll_id, position, label)
			VALUES ($1, $2, $3)
		`, poll.ID, i, label)
		if err != nil {
			return models.Poll{}, fmt.Errorf("failed to insert option %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to commit poll: %w", err)
	}

	return poll, nil
}

func (s *SQLStore) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	poll := models.Poll{ID: pollID}
	err := s.db.QueryRowContext(ctx, `
		SELECT question, owner_id, created_at FROM poll WHERE id = $1
	`, pollID).Scan(&poll.Question, &poll.OwnerID, &poll.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Poll{}, models.ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	poll.Options, err = s.optionLabels(ctx, pollID)
	if err != nil {
		return models.Poll{}, err
	}

	poll.Votes, poll.TotalVotes, err = s.tally(ctx, pollID, len(poll.Options))
	if err != nil {
		return models.Poll{}, err
	}

	return poll, nil
}

func (s *SQLStore) optionLabels(ctx context.Context, pollID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT label FROM poll_option WHERE poll_id = $1 ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

func (s *SQLStore) tally(ctx context.Context, pollID string, optionCount int) ([]int, int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT option_index, COUNT(*) FROM vote WHERE poll_id = $1 GROUP BY option_index
	`, pollID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	votes := make([]int, optionCount)
	total := 0
	for rows.Next() {
		var idx, count int
		if err := rows.Scan(&idx, &count); err != nil {
			return nil, 0, fmt.Errorf("failed to scan vote count: %w", err)
		}
		if idx >= 0 && idx < optionCount {
			votes[idx] = count
		}
		total += count
	}
	return votes, total, rows.Err()
}

func (s *SQLStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM poll ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan poll id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	polls := make([]models.Poll, 0, len(ids))
	for _, id := range ids {
		p, err := s.GetPoll(ctx, id)
		if errors.Is(err, models.ErrPollNotFound) {
			// deleted between the two queries
			continue
		}
		if err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	return polls, nil
}

func (s *SQLStore) CastVote(ctx context.Context, pollID, voterKey string, optionIndex int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var optionCount int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(o.position)
		FROM poll p
		LEFT JOIN poll_option o ON o.poll_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`, pollID).Scan(&optionCount)
	if err == sql.ErrNoRows {
		return models.ErrPollNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}

	if optionIndex < 0 || optionIndex >= optionCount {
		return models.ErrInvalidOption
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (poll_id, voter_key, option_index, created_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, voterKey, optionIndex, time.Now().UTC())
	if isUniqueViolation(err) {
		return models.ErrAlreadyVoted
	}
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return models.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

func (s *SQLStore) DeletePoll(ctx context.Context, pollID, requesterID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ownerID string
	err = tx.QueryRowContext(ctx, `SELECT owner_id FROM poll WHERE id = $1`, pollID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return models.ErrPollNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}
	if ownerID != requesterID {
		return models.ErrNotOwner
	}

	// SQLite leaves foreign keys off by default, so children go explicitly
	for _, stmt := range []string{
		`DELETE FROM vote WHERE poll_id = $1`,
		`DELETE FROM poll_option WHERE poll_id = $1`,
		`DELETE FROM poll WHERE id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, pollID); err != nil {
			return fmt.Errorf("failed to delete poll: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	return false
}
