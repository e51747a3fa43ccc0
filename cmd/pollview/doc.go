// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command pollview is a terminal client for the alx-polly API.

	pollview register alice
	export POLLY_TOKEN=...
	pollview create "Lunch?" Pizza Sushi Tacos
	pollview list
	pollview <poll-id>

Opening a poll starts an interactive viewer: pick an option with ↑/↓ (or a
digit), press enter to vote, and the results replace the options once the
server accepts the vote. Owners can delete their poll with d.

Logs go to -log (POLLY_LOG_FILE) when set. The interactive viewer otherwise
discards them so they do not tear the screen.
*/
package main
