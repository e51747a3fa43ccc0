// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the alx-polly API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - UserHandler: Registration and the current viewer
  - PollHandler: Poll creation, listing, retrieval and deletion
  - VotingHandler: Vote submission

Handlers are created via constructor functions that accept a store.Store and Config:

	pollHandler := handlers.NewPollHandler(st, cfg)

The store may be SQL-backed (SQLite, PostgreSQL) or Firestore-backed; handlers
only see the store.Store interface and the models sentinel errors.

# Identity

Registration returns a bearer token:

	POST /users {"name": "alice"} → {user_id, name, token}
	GET  /me                      → {id, name} or null

Requests carrying "Authorization: Bearer <token>" act as that user. A missing
or unknown token is anonymous. Creating, deleting and listing your own polls
require a signed-in user.

# Polls

	POST   /polls      {question, options} → CreatePoll (201, at least 2 options)
	GET    /polls                          → ListPolls (newest first)
	GET    /polls/{id}                     → GetPoll (404 when unknown)
	DELETE /polls/{id}                     → DeletePoll (204, 403 for non-owners)
	GET    /me/polls                       → MyPolls

# Voting

	POST /polls/{id}/votes {"option_index": 1}

Each voter may vote once per poll. The voter is the signed-in user, or for
anonymous requests a salted hash of the client IP. Rejections carry one of
the messages "Already voted" (409), "Invalid option" (400) or
"Poll not found" (404) in the error body's message field.
*/
package handlers
