// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is an HTTP client for the alx-polly API.

	c := client.New("http://localhost:3318", token, 10*time.Second)
	poll, err := c.FetchPoll(ctx, pollID)

A Client is the collaborator set of a pollview.Session:

	env := pollview.Env{Polls: c, Viewers: c, Votes: c}

# Errors

  - 404 from GET or DELETE /polls/{id}: models.ErrPollNotFound
  - a 2xx body that does not decode: models.ErrMalformedSnapshot
  - any other non-2xx: *APIError, whose Error() is the server's message

Vote rejections therefore read "Already voted", "Invalid option" or
"Poll not found", exactly as the server wrote them.

Every request is bounded by the timeout given to New.
*/
package client
