// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/Robinson7070/alx-polly/cliparse"
	"github.com/Robinson7070/alx-polly/db"
)

// Open returns the store selected by cfg.DatabaseType. SQL backends get their
// schema created before the store is returned.
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	switch cfg.DatabaseType {
	case cliparse.DatabaseFirestore:
		st, err := NewFirestoreStore(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		return st, nil

	case cliparse.DatabaseSQLite, cliparse.DatabasePostgres:
		conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, err
		}
		return NewSQLStore(conn), nil

	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
}
