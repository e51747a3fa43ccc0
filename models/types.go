package models

import "time"

// Voter key prefixes. Authenticated viewers vote as themselves; anonymous
// viewers are deduplicated by a salted hash of their address.
const (
	VoterKeyUserPrefix = "user:"
	VoterKeyIPPrefix   = "ip:"
)

// Request types

type RegisterUserRequest struct {
	Name string `json:"name"`
}

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type SubmitVoteRequest struct {
	OptionIndex *int `json:"option_index"`
}

// Response types

type RegisterUserResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

type SubmitVoteResponse struct {
	Message string `json:"message"`
}

// Domain types

// Poll is a read snapshot of a poll and its tallies. Votes[i] counts the
// ballots cast for Options[i].
type Poll struct {
	ID         string    `json:"id" firestore:"-"`
	Question   string    `json:"question" firestore:"question"`
	Options    []string  `json:"options" firestore:"options"`
	Votes      []int     `json:"votes" firestore:"votes"`
	TotalVotes int       `json:"total_votes" firestore:"totalVotes"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	OwnerID    string    `json:"owner_id" firestore:"ownerId"`
}

// Viewer is the person looking at a poll. A nil *Viewer is an anonymous viewer.
type Viewer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is a registered account. The token is only returned once, at registration.
type User struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Token     string    `json:"-" firestore:"token"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// Viewer returns the public identity of the user.
func (u User) Viewer() *Viewer {
	return &Viewer{ID: u.ID, Name: u.Name}
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
