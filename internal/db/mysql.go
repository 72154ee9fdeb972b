package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLClient manages the connection to MySQL
type MySQLClient struct {
	db *sql.DB
}

// NewMySQLClient creates a new MySQL client
func NewMySQLClient(ctx context.Context, connString string) (*MySQLClient, error) {
	db, err := sql.Open("mysql", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &MySQLClient{db: db}, nil
}

// Close closes the database connection
func (c *MySQLClient) Close() error {
	return c.db.Close()
}

// DB returns the underlying database handle
func (c *MySQLClient) DB() *sql.DB {
	return c.db
}

// ParseDatabaseName extracts the database name from a MySQL DSN of the form
// user:pass@tcp(host:port)/dbname?params.
func ParseDatabaseName(connString string) (string, error) {
	slash := strings.LastIndex(connString, "/")
	if slash == -1 || slash == len(connString)-1 {
		return "", fmt.Errorf("connection string has no database name")
	}

	name := connString[slash+1:]
	if q := strings.Index(name, "?"); q != -1 {
		name = name[:q]
	}
	if name == "" {
		return "", fmt.Errorf("connection string has no database name")
	}
	return name, nil
}
