// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/Robinson7070/alx-polly/models"
)

// GenerateToken creates a random secure bearer token for a user
func GenerateToken() (string, error) {
	var b [24]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}

// UserVoterKey identifies the ballot of a signed-in user
func UserVoterKey(userID string) string {
	return models.VoterKeyUserPrefix + userID
}

// AnonymousVoterKey identifies the ballot of an anonymous viewer by address
func AnonymousVoterKey(ip, salt string) string {
	return models.VoterKeyIPPrefix + HashIP(ip, salt)
}
