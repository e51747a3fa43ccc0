// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Robinson7070/alx-polly/auth"
	"github.com/Robinson7070/alx-polly/models"
)

const (
	usersCollection  = "users"
	pollsCollection  = "polls"
	votersCollection = "voters"
)

// FirestoreStore keeps data in Cloud Firestore. Each poll document carries its
// running tallies; polls/{id}/voters/{voterKey} marks who has voted.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects through the Firebase Admin SDK. An empty
// credentialsFile falls back to application default credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect firestore: %w", err)
	}

	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func (s *FirestoreStore) CreateUser(ctx context.Context, name string) (models.User, error) {
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
	if _, err := s.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *FirestoreStore) UserByToken(ctx context.Context, token string) (*models.User, error) {
	docs, err := s.client.Collection(usersCollection).
		Where("token", "==", token).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var user models.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	user.ID = docs[0].Ref.ID
	return &user, nil
}

func (s *FirestoreStore) CreatePoll(ctx context.Context, ownerID, question string, options []string) (models.Poll, error) {
	poll := models.Poll{
		ID:        uuid.NewString(),
		Question:  question,
		Options:   options,
		Votes:     make([]int, len(options)),
		CreatedAt: time.Now().UTC(),
		OwnerID:   ownerID,
	}
	if _, err := s.client.Collection(pollsCollection).Doc(poll.ID).Create(ctx, poll); err != nil {
		return models.Poll{}, fmt.Errorf("failed to create poll: %w", err)
	}
	return poll, nil
}

func decodePoll(doc *firestore.DocumentSnapshot) (models.Poll, error) {
	var poll models.Poll
	if err := doc.DataTo(&poll); err != nil {
		return models.Poll{}, fmt.Errorf("failed to decode poll %s: %w", doc.Ref.ID, err)
	}
	poll.ID = doc.Ref.ID
	return poll, nil
}

func (s *FirestoreStore) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	doc, err := s.client.Collection(pollsCollection).Doc(pollID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.Poll{}, models.ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to get poll: %w", err)
	}
	return decodePoll(doc)
}

func (s *FirestoreStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	iter := s.client.Collection(pollsCollection).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	polls := []models.Poll{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list polls: %w", err)
		}
		p, err := decodePoll(doc)
		if err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	return polls, nil
}

func (s *FirestoreStore) CastVote(ctx context.Context, pollID, voterKey string, optionIndex int) error {
	pollRef := s.client.Collection(pollsCollection).Doc(pollID)
	voterRef := pollRef.Collection(votersCollection).Doc(voterKey)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(pollRef)
		if status.Code(err) == codes.NotFound {
			return models.ErrPollNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.Get(voterRef); err == nil {
			return models.ErrAlreadyVoted
		} else if status.Code(err) != codes.NotFound {
			return err
		}

		poll, err := decodePoll(doc)
		if err != nil {
			return err
		}
		if optionIndex < 0 || optionIndex >= len(poll.Options) {
			return models.ErrInvalidOption
		}
		if len(poll.Votes) != len(poll.Options) {
			poll.Votes = make([]int, len(poll.Options))
		}
		poll.Votes[optionIndex]++

		if err := tx.Update(pollRef, []firestore.Update{
			{Path: "votes", Value: poll.Votes},
			{Path: "totalVotes", Value: firestore.Increment(1)},
		}); err != nil {
			return err
		}
		return tx.Create(voterRef, map[string]any{
			"optionIndex": optionIndex,
			"createdAt":   time.Now().UTC(),
		})
	})
}

func (s *FirestoreStore) DeletePoll(ctx context.Context, pollID, requesterID string) error {
	pollRef := s.client.Collection(pollsCollection).Doc(pollID)

	poll, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if poll.OwnerID != requesterID {
		return models.ErrNotOwner
	}

	voters, err := pollRef.Collection(votersCollection).Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("failed to list voters: %w", err)
	}
	bw := s.client.BulkWriter(ctx)
	refs := make([]*firestore.DocumentRef, 0, len(voters)+1)
	for _, v := range voters {
		refs = append(refs, v.Ref)
	}
	refs = append(refs, pollRef)

	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return fmt.Errorf("failed to queue delete of %s: %w", ref.Path, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("failed to delete poll %s: %w", pollID, err)
		}
	}

	return nil
}
