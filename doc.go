// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the alx-polly API server.

alx-polly is a small polling service: registered users create single-choice
polls, anyone may vote once, and everyone sees the tallies.

# Starting the Server

The server reads CLI flags, environment variables and an optional .env file:

	VOTER_KEY_SALT=change-me go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -voter-salt change-me

# Configuration

Required settings:

  - VOTER_KEY_SALT (-voter-salt): Secret mixed into anonymous voter keys
  - DATABASE_URL (-d): Connection string, unless DATABASE_TYPE is firestore

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or firestore (default: sqlite)
  - FIREBASE_PROJECT_ID (-firebase-project), FIREBASE_CREDENTIALS_FILE (-firebase-creds)

# Architecture

  - handlers: HTTP request handlers (users, polls, voting)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, bearer tokens
  - models: Request/response and domain types, sentinel errors
  - store: Persistence behind one interface (SQL or Firestore)
  - db: SQL connection and schema
  - auth: Tokens and voter keys
  - cliparse: Configuration parsing
  - pollview: The poll voting and results state machine
  - client: HTTP client implementing the pollview collaborators
  - tui: Terminal poll viewer, run by cmd/pollview

See package documentation for each component.
*/
package main
