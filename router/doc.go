// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the alx-polly API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

Health:

	GET /health

Accounts:

	POST /users     - Register, returns a bearer token
	GET  /me        - Current viewer or null
	GET  /me/polls  - Polls owned by the caller

Polls:

	POST   /polls      - Create poll (signed in)
	GET    /polls      - List polls
	GET    /polls/{id} - Poll with tallies
	DELETE /polls/{id} - Delete poll (owner only)

Voting:

	POST /polls/{id}/votes - Cast a vote

Every route except /health and / is wrapped in middleware.WithLogging. CORS
is applied around the whole mux by the server.
*/
package router
