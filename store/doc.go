// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists users, polls and votes behind the Store interface.

# Backends

SQLStore runs on SQLite (modernc.org/sqlite) or PostgreSQL (github.com/lib/pq)
using the schema from package db:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	st := store.NewSQLStore(conn)

FirestoreStore keeps the same data in Cloud Firestore through the Firebase
Admin SDK:

	st, err := store.NewFirestoreStore(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)

# Votes

CastVote accepts one vote per voter key per poll. Errors:

	models.ErrPollNotFound  - unknown poll
	models.ErrInvalidOption - option index outside the poll's options
	models.ErrAlreadyVoted  - the voter key already voted

GetPoll returns tallies index-aligned with the options and a total equal to
their sum.
*/
package store
