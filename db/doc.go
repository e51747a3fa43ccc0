// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and creates the schema.

# Connections

Open picks the database/sql driver for a database type and pings it:

	conn, err := db.Open(db.TypeSQLite, "file:polly.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite is served by modernc.org/sqlite, PostgreSQL by github.com/lib/pq.

SQLite connections get a 5s busy timeout unless the DSN sets its own, and the
pool is limited to one connection so concurrent writers queue rather than
fail with SQLITE_BUSY.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on both databases.

# Tables

  - app_user: registered users and their bearer tokens
  - poll: question, owner and creation time
  - poll_option: ordered option labels
  - vote: one row per (poll, voter_key)

# Relationships

	app_user 1──* poll
	poll 1──* poll_option
	poll 1──* vote

The vote primary key enforces one vote per voter per poll.
*/
package db
