package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"orderdesk/internal/infrastructure/mysql"
)

// SetupTestDB opens the MySQL test database named by ORDERDESK_TEST_DSN
// (default root@localhost:3306/orderdesk_test) and skips the test when it is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("ORDERDESK_TEST_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/orderdesk_test?parseTime=true&loc=UTC"
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every table and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	for i := len(mysql.Tables) - 1; i >= 0; i-- {
		table := mysql.Tables[i].Name
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema and starts from empty tables.
func SetupTestTables(t *testing.T, db *sql.DB) {
	if err := mysql.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	for _, tbl := range mysql.Tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", tbl.Name)); err != nil {
			t.Logf("failed to clean table %s: %v", tbl.Name, err)
		}
	}
}
