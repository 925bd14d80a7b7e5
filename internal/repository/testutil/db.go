package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"opmlkit/internal/db"
	"opmlkit/internal/model"
	"opmlkit/pkg/snowflake"

	_ "modernc.org/sqlite"
)

// snowflakeOnce guards the single snowflake initialization across parallel tests.
var snowflakeOnce sync.Once

// NewTestDB opens an in-memory sqlite database and runs all migrations.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(0); err != nil {
			// t.Fatalf is not usable inside sync.Once
			panic("failed to initialize snowflake: " + err.Error())
		}
	})

	// Shared cache keeps the in-memory database alive across connections.
	// The name includes the test name and a timestamp so parallel tests
	// never collide.
	dbName := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name(), time.Now().UnixNano())
	database, err := sql.Open("sqlite", dbName)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		database.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

// ptrVal converts a pointer to interface{}, nil pointers stay nil.
func ptrVal[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// SeedFolder inserts a folder row and returns its ID.
func SeedFolder(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()

	id := snowflake.NextID()
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO folders (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, name, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed folder: %v", err)
	}

	return id
}

// SeedSubscription inserts a subscription row and returns its ID.
func SeedSubscription(t *testing.T, db *sql.DB, sub model.Subscription) int64 {
	t.Helper()

	if sub.ID == 0 {
		sub.ID = snowflake.NextID()
	}

	now := time.Now().UTC().Format(time.RFC3339)

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO subscriptions (id, folder_id, title, url, site_url, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, ptrVal(sub.FolderID), sub.Title, sub.URL, ptrVal(sub.SiteURL), ptrVal(sub.Description), now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed subscription: %v", err)
	}

	return sub.ID
}
