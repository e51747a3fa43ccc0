// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Robinson7070/alx-polly/cliparse"
	"github.com/Robinson7070/alx-polly/db"
	"github.com/Robinson7070/alx-polly/models"
	"github.com/Robinson7070/alx-polly/store"
)

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The file lives in a per-test temp dir and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// same DSN shape as production; db.Open adds the busy timeout
	dsn := "file:" + filepath.Join(t.TempDir(), "polly.db")
	conn, err := db.Open(db.TypeSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a SQL-backed store on a fresh database. The store
// is closed when the test ends.
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	st := store.NewSQLStore(SetupTestDB(t))
	t.Cleanup(func() { st.Close() })
	return st
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		DatabaseURL:  "file::memory:",
		VoterKeySalt: "test-voter-salt",
	}
}

// CreateTestUser registers a user and returns it, token included
func CreateTestUser(t *testing.T, st store.Store, name string) models.User {
	t.Helper()

	user, err := st.CreateUser(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestPoll creates a poll owned by ownerID with the given options
func CreateTestPoll(t *testing.T, st store.Store, ownerID string, options ...string) models.Poll {
	t.Helper()

	if len(options) == 0 {
		options = []string{"A", "B"}
	}
	poll, err := st.CreatePoll(context.Background(), ownerID, "Test Poll", options)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// CastTestVote records a vote under voterKey
func CastTestVote(t *testing.T, st store.Store, pollID, voterKey string, optionIndex int) {
	t.Helper()

	if err := st.CastVote(context.Background(), pollID, voterKey, optionIndex); err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// BearerHeader returns request headers authenticating as token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
