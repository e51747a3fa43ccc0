// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and voter identification.

# Bearer Tokens

Tokens are random 24-byte (192-bit) secrets issued at registration:

	token, err := auth.GenerateToken()

Tokens are URL-safe base64 encoded and sent as "Authorization: Bearer <token>".

# Voter Keys

Every vote is stored under a voter key, one vote per key per poll:

	auth.UserVoterKey(userID)           // "user:<id>"
	auth.AnonymousVoterKey(ip, salt)    // "ip:<hash>"

# IP Hashing

Anonymous voters are identified by a salted hash, never the raw address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
