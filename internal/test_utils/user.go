package test_utils

import (
	"context"
	"database/sql"
	"testing"

	"github.com/fintrack/fintrack/pkg/user"
)

// TestUser is the user every test context carries by default.
var TestUser = user.User{
	Id:       1,
	Uid:      "00000000-0000-0000-0000-000000000001",
	Name:     "Test User",
	Email:    "test@example.com",
	Currency: "MAD",
}

// TestContext returns a context carrying TestUser.
func TestContext() context.Context {
	return user.WithUser(context.Background(), TestUser)
}

// InsertTestUser stores TestUser directly in the database so that foreign keys
// on user_id resolve in repository tests.
func InsertTestUser(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO users (id, uid, name, email, currency) VALUES (?, ?, ?, ?, ?)`,
		TestUser.Id, TestUser.Uid, TestUser.Name, TestUser.Email, TestUser.Currency,
	)
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}
}
